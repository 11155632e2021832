package account

// ResponseCode is the registry's status code for a request.
type ResponseCode string

const (
	CodeOK                   ResponseCode = "OK_200"
	CodeAccountDoesNotExist  ResponseCode = "ACCOUNT_DOES_NOT_EXIST"
	CodeAccountAlreadyExists ResponseCode = "ACCOUNT_ALREADY_EXISTS"
	CodeIllegalArgument      ResponseCode = "ILLEGAL_ARGUMENT"
	CodeTransactionError     ResponseCode = "TRANSACTION_ERROR"
	CodeUnknownError         ResponseCode = "UNKNOWN_ERROR"
)

// Class partitions response codes.
type Class int

const (
	// ClassError covers every code that is neither found nor not-found,
	// including codes this package does not know.
	ClassError Class = iota
	// ClassFound means the request succeeded and the account exists.
	ClassFound
	// ClassNotFound means the request succeeded but no account exists.
	ClassNotFound
)

// String returns the string representation of the class.
func (c Class) String() string {
	switch c {
	case ClassFound:
		return "found"
	case ClassNotFound:
		return "not_found"
	default:
		return "error"
	}
}

// Class returns the class of the code.
func (c ResponseCode) Class() Class {
	switch c {
	case CodeOK:
		return ClassFound
	case CodeAccountDoesNotExist:
		return ClassNotFound
	default:
		return ClassError
	}
}

// Found reports whether the code is in ClassFound.
func (c ResponseCode) Found() bool {
	return c.Class() == ClassFound
}

// ResponseStatus carries the code and an optional message from the registry.
type ResponseStatus struct {
	Code    ResponseCode `json:"responseCode"`
	Message string       `json:"responseMessage,omitempty"`
}
