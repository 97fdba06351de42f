package api

import (
	"encoding/json"
	"strconv"
)

// flexString decodes a JSON value that may arrive as a string, number, bool,
// or null into its string form. The backend is inconsistent about numeric
// identifier types, and every session field is persisted as a string anyway.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(strconv.FormatBool(v))
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*s = flexString(n.String())
	}
	return nil
}

// envelope is the common response wrapper: { success, message, ... }.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type accountPayload struct {
	GlobalUserID flexString `json:"Global_User_ID"`
	GlobalID     flexString `json:"Global_Id"`
	LocalID      flexString `json:"Local_Id"`
	CompanyName  flexString `json:"Company_Name"`
	WebAPI       flexString `json:"Web_Api"`
}

type accountsResponse struct {
	envelope
	Data []accountPayload `json:"data"`
}

// loginRequest mirrors the backend's field naming exactly.
type loginRequest struct {
	GlobalUserID string `json:"Global_User_ID"`
	Username     string `json:"username"`
	Password     string `json:"Password"`
	CompanyName  string `json:"Company_Name"`
	GlobalID     string `json:"Global_Id"`
	LocalID      string `json:"Local_Id"`
	WebAPI       string `json:"Web_Api"`
}

type loginResponse struct {
	envelope
	Data struct {
		AuthenticateID flexString `json:"Autheticate_Id"` // sic, backend spelling
	} `json:"data"`
}

type authUserResponse struct {
	envelope
	User struct {
		AuthenticateID flexString `json:"Autheticate_Id"`
		UserID         flexString `json:"UserId"`
		CompanyID      flexString `json:"Company_id"`
		CompanyName    flexString `json:"Company_Name"`
		UserName       flexString `json:"UserName"`
		Name           flexString `json:"Name"`
		UserType       flexString `json:"UserType"`
		UserTypeID     flexString `json:"UserTypeId"`
		BranchID       flexString `json:"BranchId"`
		BranchName     flexString `json:"BranchName"`
	} `json:"user"`
}
