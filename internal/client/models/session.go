package models

// AuthUser is the profile the backend returns from the auth-user exchange.
// All fields are carried as strings regardless of the backend's JSON types.
type AuthUser struct {
	AuthenticateID string
	UserID         string
	CompanyID      string
	CompanyName    string
	UserName       string
	Name           string
	UserType       string
	UserTypeID     string
	BranchID       string
	BranchName     string
}

// Session is the persisted singleton describing the logged-in user. It is
// either fully present or fully absent; the store writes it in one
// transaction so a partial session is never observable.
type Session struct {
	Token       string
	UserID      string
	CompanyID   string
	CompanyName string
	UserName    string
	Name        string
	UserType    string
	UserTypeID  string
	BranchID    string
	BranchName  string
	// WebAPI is the backend the session was established against.
	WebAPI string
}
