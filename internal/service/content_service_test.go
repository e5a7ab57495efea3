package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// stubRoleService grants content:approve to the listed user IDs
type stubRoleService struct {
	approvers map[string]bool
}

func (s *stubRoleService) HasPermission(userID, permission string) (bool, error) {
	if permission != PermContentApprove {
		return false, nil
	}
	return s.approvers[userID], nil
}

// recordingAuditSink captures events synchronously for assertions
type recordingAuditSink struct {
	mu     sync.Mutex
	events []AuditEvent
}

func (r *recordingAuditSink) LogEvent(event AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingAuditSink) byAction(action string) []AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []AuditEvent
	for _, e := range r.events {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

func setupContentTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Each connection to an in-memory sqlite database sees its own
	// database; keep the pool at one connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&domain.PageContent{},
		&domain.ContentVersion{},
		&domain.ContentApproval{},
		&domain.User{},
		&domain.AuditLog{},
	)
	require.NoError(t, err)
	return db
}

type contentTestEnv struct {
	svc       ContentService
	audit     *recordingAuditSink
	pages     repository.PageContentRepository
	db        *gorm.DB
	contentID uint64
}

func newContentTestEnv(t *testing.T) *contentTestEnv {
	t.Helper()
	db := setupContentTestDB(t)

	page := &domain.PageContent{
		PageKey:     "home",
		SectionKey:  "hero",
		ContentZh:   "original-zh",
		ContentType: "text",
		IsActive:    true,
	}
	require.NoError(t, db.Create(page).Error)

	audit := &recordingAuditSink{}
	roles := &stubRoleService{approvers: map[string]bool{"approver": true}}
	pages := repository.NewPageContentRepository(db)
	svc := NewContentService(
		repository.NewContentVersionRepository(db),
		repository.NewContentApprovalRepository(db),
		pages,
		roles,
		audit,
	)
	return &contentTestEnv{svc: svc, audit: audit, pages: pages, db: db, contentID: page.ID}
}

func textBody(zh string) *domain.VersionBody {
	return &domain.VersionBody{ContentZh: zh, ContentType: "text"}
}

func TestCreateVersion_FirstVersionIsOne(t *testing.T) {
	env := newContentTestEnv(t)

	v, err := env.svc.CreateVersion(env.contentID, textBody("A"), "editor", "initial", domain.ChangeTypeCreate)
	require.NoError(t, err)
	assert.Equal(t, 1, v.VersionNumber)
	assert.Equal(t, domain.ChangeTypeCreate, v.ChangeType)
	assert.Equal(t, "editor", v.CreatedBy)
	assert.False(t, v.CreatedAt.IsZero())
}

func TestCreateVersion_SequentialNumbers(t *testing.T) {
	env := newContentTestEnv(t)

	const n = 5
	for i := 1; i <= n; i++ {
		v, err := env.svc.CreateVersion(env.contentID, textBody(fmt.Sprintf("body-%d", i)), "editor", "", "")
		require.NoError(t, err)
		assert.Equal(t, i, v.VersionNumber)
		assert.Equal(t, domain.ChangeTypeUpdate, v.ChangeType) // default
	}

	versions, err := env.svc.ListVersions(env.contentID)
	require.NoError(t, err)
	require.Len(t, versions, n)
	for i, v := range versions {
		assert.Equal(t, n-i, v.VersionNumber, "expected descending order")
	}
}

func TestCreateVersion_EmitsAuditEvent(t *testing.T) {
	env := newContentTestEnv(t)

	v, err := env.svc.CreateVersion(env.contentID, textBody("A"), "editor", "first draft", "")
	require.NoError(t, err)

	events := env.audit.byAction(AuditVersionCreated)
	require.Len(t, events, 1)
	assert.Equal(t, domain.SeverityInfo, events[0].Severity)
	assert.Equal(t, "editor", events[0].UserID)
	assert.Contains(t, events[0].Description, "home - hero")
	assert.Equal(t, v.ID, events[0].Details["version_id"])
}

func TestGetVersion_NotFound(t *testing.T) {
	env := newContentTestEnv(t)

	_, err := env.svc.GetVersion("cv_missing")
	assert.ErrorIs(t, err, common.ErrVersionNotFound)
}

func TestCreateVersion_MetadataRoundTrip(t *testing.T) {
	env := newContentTestEnv(t)

	body := textBody("A")
	body.MetaData = domain.JSONMap{"a": float64(1), "b": "x"}

	created, err := env.svc.CreateVersion(env.contentID, body, "editor", "", "")
	require.NoError(t, err)

	got, err := env.svc.GetVersion(created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JSONMap{"a": float64(1), "b": "x"}, got.MetaData)
}

func TestSubmitForApproval_PermissionDenied(t *testing.T) {
	env := newContentTestEnv(t)

	v, err := env.svc.CreateVersion(env.contentID, textBody("A"), "editor", "", "")
	require.NoError(t, err)

	_, err = env.svc.SubmitForApproval(env.contentID, v.ID, "editor")
	assert.ErrorIs(t, err, common.ErrPermissionDenied)

	// No approval row may exist after a denied submission
	approvals, err := env.svc.ListApprovals(env.contentID)
	require.NoError(t, err)
	assert.Empty(t, approvals)
}

func TestSubmitForApproval_CreatesPending(t *testing.T) {
	env := newContentTestEnv(t)

	v, err := env.svc.CreateVersion(env.contentID, textBody("A"), "editor", "", "")
	require.NoError(t, err)

	approval, err := env.svc.SubmitForApproval(env.contentID, v.ID, "approver")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusPending, approval.Status)
	assert.Equal(t, v.ID, approval.VersionID)
	assert.Nil(t, approval.ApprovedAt)

	events := env.audit.byAction(AuditApprovalSubmitted)
	require.Len(t, events, 1)
	assert.Equal(t, domain.SeverityInfo, events[0].Severity)
}

func TestApprove_TransitionsPending(t *testing.T) {
	env := newContentTestEnv(t)

	v, err := env.svc.CreateVersion(env.contentID, textBody("A"), "editor", "", "")
	require.NoError(t, err)
	approval, err := env.svc.SubmitForApproval(env.contentID, v.ID, "approver")
	require.NoError(t, err)

	resolved, err := env.svc.Approve(approval.ID, "approver", "looks good")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusApproved, resolved.Status)
	assert.Equal(t, "approver", resolved.ApproverID)
	assert.Equal(t, "looks good", resolved.ApprovalNotes)
	require.NotNil(t, resolved.ApprovedAt)

	events := env.audit.byAction(AuditApprovalApproved)
	require.Len(t, events, 1)
	assert.Equal(t, domain.SeverityInfo, events[0].Severity)
	assert.Equal(t, "looks good", events[0].Details["notes"])
}

func TestReject_SetsWarningSeverity(t *testing.T) {
	env := newContentTestEnv(t)

	v, err := env.svc.CreateVersion(env.contentID, textBody("A"), "editor", "", "")
	require.NoError(t, err)
	approval, err := env.svc.SubmitForApproval(env.contentID, v.ID, "approver")
	require.NoError(t, err)

	resolved, err := env.svc.Reject(approval.ID, "approver", "needs work")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusRejected, resolved.Status)
	assert.Equal(t, "needs work", resolved.ApprovalNotes)
	require.NotNil(t, resolved.ApprovedAt)

	events := env.audit.byAction(AuditApprovalRejected)
	require.Len(t, events, 1)
	assert.Equal(t, domain.SeverityWarning, events[0].Severity)
}

func TestApprove_PermissionDenied(t *testing.T) {
	env := newContentTestEnv(t)

	v, err := env.svc.CreateVersion(env.contentID, textBody("A"), "editor", "", "")
	require.NoError(t, err)
	approval, err := env.svc.SubmitForApproval(env.contentID, v.ID, "approver")
	require.NoError(t, err)

	_, err = env.svc.Approve(approval.ID, "editor", "")
	assert.ErrorIs(t, err, common.ErrPermissionDenied)
}

func TestApprove_AlreadyResolved(t *testing.T) {
	env := newContentTestEnv(t)

	v, err := env.svc.CreateVersion(env.contentID, textBody("A"), "editor", "", "")
	require.NoError(t, err)
	approval, err := env.svc.SubmitForApproval(env.contentID, v.ID, "approver")
	require.NoError(t, err)

	_, err = env.svc.Approve(approval.ID, "approver", "ok")
	require.NoError(t, err)

	_, err = env.svc.Reject(approval.ID, "approver", "changed my mind")
	assert.ErrorIs(t, err, common.ErrApprovalResolved)

	// The original resolution is untouched
	got, err := env.svc.GetApproval(approval.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusApproved, got.Status)
	assert.Equal(t, "ok", got.ApprovalNotes)
}

func TestGetApproval_NotFound(t *testing.T) {
	env := newContentTestEnv(t)

	_, err := env.svc.GetApproval("ca_missing")
	assert.ErrorIs(t, err, common.ErrApprovalNotFound)
}

func TestListPendingApprovals(t *testing.T) {
	env := newContentTestEnv(t)

	// Give the approver a display name for the worklist join
	require.NoError(t, env.db.Create(&domain.User{
		ID: "approver", Username: "chief-editor", Email: "chief@example.com",
	}).Error)

	v1, err := env.svc.CreateVersion(env.contentID, textBody("A"), "editor", "", "")
	require.NoError(t, err)
	v2, err := env.svc.CreateVersion(env.contentID, textBody("B"), "editor", "", "")
	require.NoError(t, err)

	a1, err := env.svc.SubmitForApproval(env.contentID, v1.ID, "approver")
	require.NoError(t, err)
	a2, err := env.svc.SubmitForApproval(env.contentID, v2.ID, "approver")
	require.NoError(t, err)

	_, err = env.svc.Approve(a1.ID, "approver", "")
	require.NoError(t, err)

	pending, err := env.svc.ListPendingApprovals()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, a2.ID, pending[0].ApprovalID)
	assert.Equal(t, v2.ID, pending[0].VersionID)
	assert.Equal(t, 2, pending[0].VersionNumber)
	assert.Equal(t, "B", pending[0].ContentZh)
	assert.Equal(t, domain.ApprovalStatusPending, pending[0].Status)
}

func TestRestoreVersion(t *testing.T) {
	env := newContentTestEnv(t)

	v1, err := env.svc.CreateVersion(env.contentID, textBody("A"), "editor", "", "")
	require.NoError(t, err)
	_, err = env.svc.CreateVersion(env.contentID, textBody("B"), "editor", "", "")
	require.NoError(t, err)

	restored, err := env.svc.RestoreVersion(v1.ID, "editor")
	require.NoError(t, err)
	assert.Equal(t, 3, restored.VersionNumber)
	assert.Equal(t, "A", restored.ContentZh)
	assert.Equal(t, domain.ChangeTypeRestore, restored.ChangeType)
	assert.Contains(t, restored.ChangeDescription, "restore to version 1")

	// The live projection now shows the restored content
	live, err := env.pages.FindByID(env.contentID)
	require.NoError(t, err)
	assert.Equal(t, "A", live.ContentZh)

	// History is append-only: all three versions remain
	versions, err := env.svc.ListVersions(env.contentID)
	require.NoError(t, err)
	assert.Len(t, versions, 3)
}

func TestRestoreVersion_NotFound(t *testing.T) {
	env := newContentTestEnv(t)

	_, err := env.svc.RestoreVersion("cv_missing", "editor")
	assert.ErrorIs(t, err, common.ErrVersionNotFound)
}

func TestCreateVersion_ConcurrentAllocationsAreUnique(t *testing.T) {
	env := newContentTestEnv(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.CreateVersion(env.contentID, textBody(fmt.Sprintf("c-%d", i)), "editor", "", "")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}

	versions, err := env.svc.ListVersions(env.contentID)
	require.NoError(t, err)
	require.Len(t, versions, workers)

	seen := make(map[int]bool)
	for _, v := range versions {
		assert.False(t, seen[v.VersionNumber], "duplicate version_number %d", v.VersionNumber)
		seen[v.VersionNumber] = true
	}
	for i := 1; i <= workers; i++ {
		assert.True(t, seen[i], "missing version_number %d", i)
	}
}

// End-to-end walkthrough of the editorial workflow
func TestContentWorkflow_EndToEnd(t *testing.T) {
	env := newContentTestEnv(t)

	v1, err := env.svc.CreateVersion(env.contentID, textBody("A"), "editor", "initial", domain.ChangeTypeCreate)
	require.NoError(t, err)
	assert.Equal(t, 1, v1.VersionNumber)

	v2, err := env.svc.CreateVersion(env.contentID, textBody("B"), "editor", "rewrite", "")
	require.NoError(t, err)
	assert.Equal(t, 2, v2.VersionNumber)

	approval, err := env.svc.SubmitForApproval(env.contentID, v2.ID, "approver")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusPending, approval.Status)

	resolved, err := env.svc.Approve(approval.ID, "approver", "looks good")
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalStatusApproved, resolved.Status)
	require.NotNil(t, resolved.ApprovedAt)

	versions, err := env.svc.ListVersions(env.contentID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, v2.ID, versions[0].ID)
	assert.Equal(t, v1.ID, versions[1].ID)

	restored, err := env.svc.RestoreVersion(v1.ID, "editor")
	require.NoError(t, err)
	assert.Equal(t, 3, restored.VersionNumber)
	assert.Equal(t, "A", restored.ContentZh)
	assert.Equal(t, domain.ChangeTypeRestore, restored.ChangeType)

	live, err := env.pages.FindByID(env.contentID)
	require.NoError(t, err)
	assert.Equal(t, "A", live.ContentZh)
}
