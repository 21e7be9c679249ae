package models

import (
	"strings"
	"unicode/utf8"
)

const maxTitleLen = 50

// FieldError is a single field-level validation violation. Controllers report
// the first one with HTTP 400.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// TodoCreateRequest is the inbound payload for creating a todo.
type TodoCreateRequest struct {
	Title string `json:"title"`
}

// Validate checks the structural constraints of the create payload.
func (r *TodoCreateRequest) Validate() []FieldError {
	var errs []FieldError
	title := strings.TrimSpace(r.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	} else if utf8.RuneCountInString(r.Title) > maxTitleLen {
		errs = append(errs, FieldError{Field: "title", Message: "title must be 50 characters or fewer"})
	}
	return errs
}

// TodoModifyRequest is the inbound payload for updating a todo's done flag.
// Only done is mutable; title and owner never change through this path.
type TodoModifyRequest struct {
	ID   string `json:"id"`
	Done bool   `json:"done"`
}

// Validate checks the structural constraints of the modify payload.
func (r *TodoModifyRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.ID) == "" {
		errs = append(errs, FieldError{Field: "id", Message: "id is required"})
	}
	return errs
}

// TodoDetailResponse is the outbound view of a single todo.
type TodoDetailResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// NewTodoDetailResponse shapes a store record into its list/detail view.
func NewTodoDetailResponse(t Todo) TodoDetailResponse {
	return TodoDetailResponse{ID: t.ID, Title: t.Title, Done: t.Done}
}

// TodoListResponse is the envelope returned by the listing operation and by
// every successful mutation: the owner's full, fresh todo list.
type TodoListResponse struct {
	Todos []TodoDetailResponse `json:"todos"`
	Error string               `json:"error,omitempty"`
}

// UserSignUpRequest is the inbound payload for registering an account.
type UserSignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserName string `json:"userName"`
}

// Validate checks the structural constraints of the sign-up payload.
func (r *UserSignUpRequest) Validate() []FieldError {
	var errs []FieldError
	email := strings.TrimSpace(r.Email)
	switch {
	case email == "":
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	case !strings.Contains(email, "@"):
		errs = append(errs, FieldError{Field: "email", Message: "email is not valid"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}
	if strings.TrimSpace(r.UserName) == "" {
		errs = append(errs, FieldError{Field: "userName", Message: "userName is required"})
	}
	return errs
}

// UserSignInRequest is the inbound payload for signing in.
type UserSignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the structural constraints of the sign-in payload.
func (r *UserSignInRequest) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}
	return errs
}

// UserResponse is the outbound view of an account.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Role     Role   `json:"role"`
}

// NewUserResponse shapes a user record into its outbound view.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, UserName: u.UserName, Role: u.Role}
}

// SignInResponse carries the issued access token alongside the account view.
type SignInResponse struct {
	Token string `json:"token"`
	UserResponse
}
