package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username is already taken")
	ErrSuperAdminImmutable = errors.New("cannot modify super admin")
	ErrRoleNotAllowed      = errors.New("role change not permitted")
)

// Master data errors
var (
	ErrBranchNotFound     = errors.New("branch not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrNameTaken          = errors.New("name is already taken")
	ErrHasDependents      = errors.New("cannot delete entity with associated records")
)

// Employee/Product errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmpIDTaken       = errors.New("employee ID is already taken")
	ErrProductNotFound  = errors.New("product not found")
)

// Assignment errors
var (
	ErrAssignmentNotFound      = errors.New("assignment not found")
	ErrAlreadyReturned         = errors.New("product already returned")
	ErrReturnedImmutable       = errors.New("cannot modify returned assignments")
	ErrPastExpectedReturn      = errors.New("expected return date cannot be in the past")
	ErrNoAssignmentsForProduct = errors.New("no assignments found for this product")
)
