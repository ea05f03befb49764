package report_test

import (
	"testing"
	"time"

	"grievance/backend/internal/apperr"
	"grievance/backend/internal/models"
	"grievance/backend/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func strPtr(s string) *string { return &s }

func adminUser() *models.User {
	return &models.User{ID: 1, Name: "admin", Type: models.RoleAdmin}
}

// TestUpdate_RejectsNonAdmin verifies a general user cannot touch reports.
func TestUpdate_RejectsNonAdmin(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", uint(2)).Return(&models.User{ID: 2, Type: models.RoleGeneral}, nil)
	svc := report.NewService(storageMock, new(MockMediaStore), 0)

	_, err := svc.Update(10, 2, report.UpdateFields{Status: strPtr(models.StatusResolved)})

	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	storageMock.AssertNotCalled(t, "GetReportByID", mock.Anything)
}

// TestUpdate_UnknownCallerIsForbidden verifies a dangling admin id is
// rejected the same way as a non-admin.
func TestUpdate_UnknownCallerIsForbidden(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", uint(99)).Return(nil, nil)
	svc := report.NewService(storageMock, new(MockMediaStore), 0)

	_, err := svc.Update(10, 99, report.UpdateFields{})

	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

// TestUpdate_ReportNotFound verifies the NotFound path.
func TestUpdate_ReportNotFound(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", uint(1)).Return(adminUser(), nil)
	storageMock.On("GetReportByID", uint(10)).Return(nil, nil)
	svc := report.NewService(storageMock, new(MockMediaStore), 0)

	_, err := svc.Update(10, 1, report.UpdateFields{Title: strPtr("new title")})

	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

// TestUpdate_StatusTransitions exercises the transition table: legal moves
// succeed, illegal moves and unknown statuses are rejected.
func TestUpdate_StatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to in progress", models.StatusPending, models.StatusInProgress, true},
		{"pending to resolved", models.StatusPending, models.StatusResolved, true},
		{"in progress back to pending", models.StatusInProgress, models.StatusPending, true},
		{"forwarded to resolved", models.StatusForwarded, models.StatusResolved, true},
		{"resolved reopened", models.StatusResolved, models.StatusInProgress, true},
		{"same status is a no-op", models.StatusPending, models.StatusPending, true},
		{"resolved cannot go forwarded", models.StatusResolved, models.StatusForwarded, false},
		{"forwarded cannot go pending", models.StatusForwarded, models.StatusPending, false},
		{"unknown status string", models.StatusPending, "Escalated", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storageMock := new(MockStorage)
			storageMock.On("GetUserByID", uint(1)).Return(adminUser(), nil)
			storageMock.On("GetReportByID", uint(5)).Return(&models.Report{ID: 5, Status: tt.from}, nil)
			if tt.allowed {
				storageMock.On("UpdateReport", mock.AnythingOfType("*models.Report")).Return(nil)
			}
			svc := report.NewService(storageMock, new(MockMediaStore), 0)

			updated, err := svc.Update(5, 1, report.UpdateFields{Status: strPtr(tt.to)})

			if tt.allowed {
				assert.NoError(t, err)
				assert.Equal(t, tt.to, updated.Status)
			} else {
				assert.True(t, apperr.IsKind(err, apperr.KindValidation))
				storageMock.AssertNotCalled(t, "UpdateReport", mock.Anything)
			}
		})
	}
}

// TestUpdate_RejectedStatusMessage verifies an illegal status value is
// reported as invalid rather than missing.
func TestUpdate_RejectedStatusMessage(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", uint(1)).Return(adminUser(), nil)
	storageMock.On("GetReportByID", uint(5)).Return(&models.Report{ID: 5, Status: models.StatusResolved}, nil)
	svc := report.NewService(storageMock, new(MockMediaStore), 0)

	_, err := svc.Update(5, 1, report.UpdateFields{Status: strPtr("Escalated")})

	e := apperr.As(err)
	assert.NotNil(t, e)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Equal(t, "invalid field values", e.Message)
	assert.Equal(t, []string{"status"}, e.Fields)
}

// TestUpdate_PartialFields verifies untouched fields survive a partial edit.
func TestUpdate_PartialFields(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", uint(1)).Return(adminUser(), nil)
	storageMock.On("GetReportByID", uint(5)).Return(&models.Report{
		ID: 5, Status: models.StatusPending, Title: "old", Department: "Sanitation",
	}, nil)
	storageMock.On("UpdateReport", mock.AnythingOfType("*models.Report")).Return(nil)
	svc := report.NewService(storageMock, new(MockMediaStore), 0)

	updated, err := svc.Update(5, 1, report.UpdateFields{
		Department: strPtr("Water Supply"),
		AssignedTo: strPtr("Field Team 2"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "old", updated.Title, "title must be untouched")
	assert.Equal(t, models.StatusPending, updated.Status, "status must be untouched")
	assert.Equal(t, "Water Supply", updated.Department)
	assert.Equal(t, "Field Team 2", updated.AssignedTo)
}

// TestVerifyAndForward_SetsVerificationFields verifies the full verify flow
// including the Forwarded status.
func TestVerifyAndForward_SetsVerificationFields(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", uint(1)).Return(adminUser(), nil)
	storageMock.On("GetReportByID", uint(8)).Return(&models.Report{ID: 8, Status: models.StatusPending}, nil)
	storageMock.On("UpdateReport", mock.AnythingOfType("*models.Report")).Return(nil)
	svc := report.NewService(storageMock, new(MockMediaStore), 0)

	before := time.Now()
	verified, err := svc.VerifyAndForward(8, 1, "Roads Dept", "confirmed on site")

	assert.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Equal(t, models.StatusForwarded, verified.Status)
	assert.Equal(t, "Roads Dept", verified.ForwardedTo)
	assert.Equal(t, "confirmed on site", verified.VerificationNotes)
	assert.Equal(t, uint(1), verified.VerifiedBy)
	assert.NotNil(t, verified.VerifiedAt)
	assert.False(t, verified.VerifiedAt.Before(before), "verification timestamp must be fresh")
}

// TestVerifyAndForward_DefaultAuthority verifies the fallback authority name.
func TestVerifyAndForward_DefaultAuthority(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", uint(1)).Return(adminUser(), nil)
	storageMock.On("GetReportByID", uint(8)).Return(&models.Report{ID: 8, Status: models.StatusPending}, nil)
	storageMock.On("UpdateReport", mock.AnythingOfType("*models.Report")).Return(nil)
	svc := report.NewService(storageMock, new(MockMediaStore), 0)

	verified, err := svc.VerifyAndForward(8, 1, "", "")

	assert.NoError(t, err)
	assert.Equal(t, report.DefaultAuthority, verified.ForwardedTo)
}

// TestVerifyAndForward_Reverification verifies re-invoking overwrites the
// previous verification instead of failing.
func TestVerifyAndForward_Reverification(t *testing.T) {
	earlier := time.Now().Add(-time.Hour)
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", uint(1)).Return(adminUser(), nil)
	storageMock.On("GetReportByID", uint(8)).Return(&models.Report{
		ID:          8,
		Status:      models.StatusForwarded,
		IsVerified:  true,
		VerifiedAt:  &earlier,
		ForwardedTo: "Old Authority",
	}, nil)
	storageMock.On("UpdateReport", mock.AnythingOfType("*models.Report")).Return(nil)
	svc := report.NewService(storageMock, new(MockMediaStore), 0)

	verified, err := svc.VerifyAndForward(8, 1, "New Authority", "")

	assert.NoError(t, err)
	assert.Equal(t, "New Authority", verified.ForwardedTo)
	assert.True(t, verified.VerifiedAt.After(earlier), "timestamp must be overwritten")
}

// TestDelete_CascadesOverMedia verifies rows and files go with the report,
// and that a failed file unlink does not abort the cascade.
func TestDelete_CascadesOverMedia(t *testing.T) {
	storageMock := new(MockStorage)
	mediaMock := new(MockMediaStore)
	storageMock.On("GetUserByID", uint(1)).Return(adminUser(), nil)
	storageMock.On("GetReportByID", uint(6)).Return(&models.Report{ID: 6}, nil)
	storageMock.On("MediaForReport", uint(6)).Return([]models.Media{
		{ID: 1, StoredName: "a.png", ComplainID: 6},
		{ID: 2, StoredName: "b.png", ComplainID: 6},
	}, nil)
	mediaMock.On("Remove", "a.png").Return(assert.AnError) // unlink failure is swallowed
	mediaMock.On("Remove", "b.png").Return(nil)
	storageMock.On("DeleteMediaForReport", uint(6)).Return(nil)
	storageMock.On("DeleteReport", uint(6)).Return(nil)
	svc := report.NewService(storageMock, mediaMock, 0)

	err := svc.Delete(6, 1)

	assert.NoError(t, err)
	mediaMock.AssertNumberOfCalls(t, "Remove", 2)
	storageMock.AssertCalled(t, "DeleteMediaForReport", uint(6))
	storageMock.AssertCalled(t, "DeleteReport", uint(6))
}

// TestDelete_NotFound verifies deleting an absent report fails cleanly.
func TestDelete_NotFound(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("GetUserByID", uint(1)).Return(adminUser(), nil)
	storageMock.On("GetReportByID", uint(77)).Return(nil, nil)
	svc := report.NewService(storageMock, new(MockMediaStore), 0)

	err := svc.Delete(77, 1)

	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	storageMock.AssertNotCalled(t, "DeleteReport", mock.Anything)
}
