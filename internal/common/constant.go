package common

// Session store keys. The backend returns these fields from the auth-user
// call; every value is persisted as a string.
const (
	KeyUserToken   = "userToken"
	KeyUserID      = "userId"
	KeyCompanyID   = "companyId"
	KeyCompanyName = "companyName"
	KeyUserName    = "userName"
	KeyName        = "name"
	KeyUserType    = "userType"
	KeyUserTypeID  = "userTypeId"
	KeyBranchID    = "branchId"
	KeyBranchName  = "branchName"

	// KeyWebAPI pins the backend the session was established against, so the
	// client can be pointed back at it after a restart.
	KeyWebAPI = "webApi"

	// KeyDeviceID holds the per-install identifier. Cleared on logout and
	// regenerated lazily on next use.
	KeyDeviceID = "deviceId"
)

// AuthHeaderName carries the authenticate id on the auth-user call.
// The backend expects the raw value, not a bearer scheme.
const AuthHeaderName = "Authorization"

// DeviceIDHeaderName carries the per-install identifier on every request.
const DeviceIDHeaderName = "X-Device-Id"
