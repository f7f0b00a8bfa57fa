package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/partflow/partflow-backend-go/internal/domain/auth"
	"github.com/partflow/partflow-backend-go/internal/domain/invitation"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusAndCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"unauthenticated", auth.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{"session expired", auth.ErrSessionExpired, http.StatusUnauthorized, "SESSION_EXPIRED"},
		{"email not verified", auth.ErrEmailNotVerified, http.StatusForbidden, "EMAIL_NOT_VERIFIED"},
		{"approval required", user.ErrApprovalRequired, http.StatusForbidden, "APPROVAL_REQUIRED"},
		{"not approved member", user.ErrNotApprovedMember, http.StatusConflict, "NOT_APPROVED_MEMBER"},
		{"user not found", user.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"duplicate invitation", invitation.ErrDuplicateActiveInvitation, http.StatusConflict, "DUPLICATE_INVITATION"},
		{"invitation expired", invitation.ErrTokenExpired, http.StatusBadRequest, "INVITATION_EXPIRED"},
		{"already answered", invitation.ErrInvalidState, http.StatusConflict, "INVITATION_ALREADY_ANSWERED"},
		{"email mismatch", invitation.ErrEmailMismatch, http.StatusForbidden, "EMAIL_MISMATCH"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body Response
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestHandleError_WrappedSentinel(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.Join(errors.New("refresh"), auth.ErrSessionExpired))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "SESSION_EXPIRED", body.Error.Code)
}
