package account

import "testing"

func TestResponseCode_Class(t *testing.T) {
	tests := []struct {
		code ResponseCode
		want Class
	}{
		{CodeOK, ClassFound},
		{CodeAccountDoesNotExist, ClassNotFound},
		{CodeAccountAlreadyExists, ClassError},
		{CodeIllegalArgument, ClassError},
		{CodeTransactionError, ClassError},
		{CodeUnknownError, ClassError},
		{ResponseCode("SOMETHING_NEW"), ClassError},
		{ResponseCode(""), ClassError},
	}

	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			if got := tc.code.Class(); got != tc.want {
				t.Errorf("Class() = %v, want %v", got, tc.want)
			}
			if got := tc.code.Found(); got != (tc.want == ClassFound) {
				t.Errorf("Found() = %v, want %v", got, tc.want == ClassFound)
			}
		})
	}
}

func TestUserIDType_Valid(t *testing.T) {
	for _, typ := range []UserIDType{UserIDTypeCPR, UserIDTypeLocal, UserIDTypeUniqueID} {
		if !typ.Valid() {
			t.Errorf("%q.Valid() = false, want true", typ)
		}
	}
	if UserIDType("EMAIL").Valid() {
		t.Error(`"EMAIL".Valid() = true, want false`)
	}
}
