package mock

import (
	context "context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	catalog "github.com/wonderpick/pocketbot/pocketbot/catalog"
	models "github.com/wonderpick/pocketbot/pocketbot/database/models"
	repositories "github.com/wonderpick/pocketbot/pocketbot/database/repositories"
)

// MockSource is a mock of the catalog Source interface.
type MockSource struct {
	ctrl     *gomock.Controller
	recorder *MockSourceMockRecorder
	isgomock struct{}
}

// MockSourceMockRecorder is the mock recorder for MockSource.
type MockSourceMockRecorder struct {
	mock *MockSource
}

// NewMockSource creates a new mock instance.
func NewMockSource(ctrl *gomock.Controller) *MockSource {
	mock := &MockSource{ctrl: ctrl}
	mock.recorder = &MockSourceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSource) EXPECT() *MockSourceMockRecorder {
	return m.recorder
}

// FetchCandidates mocks base method.
func (m *MockSource) FetchCandidates(ctx context.Context, count int) ([]catalog.Card, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FetchCandidates", ctx, count)
	ret0, _ := ret[0].([]catalog.Card)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FetchCandidates indicates an expected call of FetchCandidates.
func (mr *MockSourceMockRecorder) FetchCandidates(ctx, count any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FetchCandidates", reflect.TypeOf((*MockSource)(nil).FetchCandidates), ctx, count)
}

// FindByID mocks base method.
func (m *MockSource) FindByID(ctx context.Context, id string) (*catalog.Card, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FindByID", ctx, id)
	ret0, _ := ret[0].(*catalog.Card)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FindByID indicates an expected call of FindByID.
func (mr *MockSourceMockRecorder) FindByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FindByID", reflect.TypeOf((*MockSource)(nil).FindByID), ctx, id)
}

// SearchByName mocks base method.
func (m *MockSource) SearchByName(ctx context.Context, query string) ([]catalog.Card, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SearchByName", ctx, query)
	ret0, _ := ret[0].([]catalog.Card)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SearchByName indicates an expected call of SearchByName.
func (mr *MockSourceMockRecorder) SearchByName(ctx, query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SearchByName", reflect.TypeOf((*MockSource)(nil).SearchByName), ctx, query)
}

// MockUsers is a mock of the user repository surface the game services use.
type MockUsers struct {
	ctrl     *gomock.Controller
	recorder *MockUsersMockRecorder
	isgomock struct{}
}

// MockUsersMockRecorder is the mock recorder for MockUsers.
type MockUsersMockRecorder struct {
	mock *MockUsers
}

// NewMockUsers creates a new mock instance.
func NewMockUsers(ctrl *gomock.Controller) *MockUsers {
	mock := &MockUsers{ctrl: ctrl}
	mock.recorder = &MockUsersMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUsers) EXPECT() *MockUsersMockRecorder {
	return m.recorder
}

// GetOrCreate mocks base method.
func (m *MockUsers) GetOrCreate(ctx context.Context, discordID, username string) (*models.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetOrCreate", ctx, discordID, username)
	ret0, _ := ret[0].(*models.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetOrCreate indicates an expected call of GetOrCreate.
func (mr *MockUsersMockRecorder) GetOrCreate(ctx, discordID, username any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOrCreate", reflect.TypeOf((*MockUsers)(nil).GetOrCreate), ctx, discordID, username)
}

// RecordBattleResult mocks base method.
func (m *MockUsers) RecordBattleResult(ctx context.Context, winnerID, loserID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecordBattleResult", ctx, winnerID, loserID)
	ret0, _ := ret[0].(error)
	return ret0
}

// RecordBattleResult indicates an expected call of RecordBattleResult.
func (mr *MockUsersMockRecorder) RecordBattleResult(ctx, winnerID, loserID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordBattleResult", reflect.TypeOf((*MockUsers)(nil).RecordBattleResult), ctx, winnerID, loserID)
}

// MockPackLogs is a mock of the pack log repository surface.
type MockPackLogs struct {
	ctrl     *gomock.Controller
	recorder *MockPackLogsMockRecorder
	isgomock struct{}
}

// MockPackLogsMockRecorder is the mock recorder for MockPackLogs.
type MockPackLogsMockRecorder struct {
	mock *MockPackLogs
}

// NewMockPackLogs creates a new mock instance.
func NewMockPackLogs(ctrl *gomock.Controller) *MockPackLogs {
	mock := &MockPackLogs{ctrl: ctrl}
	mock.recorder = &MockPackLogsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPackLogs) EXPECT() *MockPackLogsMockRecorder {
	return m.recorder
}

// RecordOpening mocks base method.
func (m *MockPackLogs) RecordOpening(ctx context.Context, userID string, cardIDs []string) (*models.PackLog, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecordOpening", ctx, userID, cardIDs)
	ret0, _ := ret[0].(*models.PackLog)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// RecordOpening indicates an expected call of RecordOpening.
func (mr *MockPackLogsMockRecorder) RecordOpening(ctx, userID, cardIDs any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecordOpening", reflect.TypeOf((*MockPackLogs)(nil).RecordOpening), ctx, userID, cardIDs)
}

// DrawFromLatest mocks base method.
func (m *MockPackLogs) DrawFromLatest(ctx context.Context, requesterID, targetID string, pick repositories.PickFunc) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DrawFromLatest", ctx, requesterID, targetID, pick)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// DrawFromLatest indicates an expected call of DrawFromLatest.
func (mr *MockPackLogsMockRecorder) DrawFromLatest(ctx, requesterID, targetID, pick any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DrawFromLatest", reflect.TypeOf((*MockPackLogs)(nil).DrawFromLatest), ctx, requesterID, targetID, pick)
}

// MockLedger is a mock of the trade Ledger interface.
type MockLedger struct {
	ctrl     *gomock.Controller
	recorder *MockLedgerMockRecorder
	isgomock struct{}
}

// MockLedgerMockRecorder is the mock recorder for MockLedger.
type MockLedgerMockRecorder struct {
	mock *MockLedger
}

// NewMockLedger creates a new mock instance.
func NewMockLedger(ctrl *gomock.Controller) *MockLedger {
	mock := &MockLedger{ctrl: ctrl}
	mock.recorder = &MockLedgerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockLedger) EXPECT() *MockLedgerMockRecorder {
	return m.recorder
}

// GetUserCard mocks base method.
func (m *MockLedger) GetUserCard(ctx context.Context, userID, cardID string) (*models.UserCard, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUserCard", ctx, userID, cardID)
	ret0, _ := ret[0].(*models.UserCard)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUserCard indicates an expected call of GetUserCard.
func (mr *MockLedgerMockRecorder) GetUserCard(ctx, userID, cardID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUserCard", reflect.TypeOf((*MockLedger)(nil).GetUserCard), ctx, userID, cardID)
}

// Swap mocks base method.
func (m *MockLedger) Swap(ctx context.Context, userA, cardA, userB, cardB string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Swap", ctx, userA, cardA, userB, cardB)
	ret0, _ := ret[0].(error)
	return ret0
}

// Swap indicates an expected call of Swap.
func (mr *MockLedgerMockRecorder) Swap(ctx, userA, cardA, userB, cardB any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Swap", reflect.TypeOf((*MockLedger)(nil).Swap), ctx, userA, cardA, userB, cardB)
}

// MockCollections is a mock of the battle Collections interface.
type MockCollections struct {
	ctrl     *gomock.Controller
	recorder *MockCollectionsMockRecorder
	isgomock struct{}
}

// MockCollectionsMockRecorder is the mock recorder for MockCollections.
type MockCollectionsMockRecorder struct {
	mock *MockCollections
}

// NewMockCollections creates a new mock instance.
func NewMockCollections(ctrl *gomock.Controller) *MockCollections {
	mock := &MockCollections{ctrl: ctrl}
	mock.recorder = &MockCollectionsMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCollections) EXPECT() *MockCollectionsMockRecorder {
	return m.recorder
}

// GetAllByUserID mocks base method.
func (m *MockCollections) GetAllByUserID(ctx context.Context, userID string) ([]*models.UserCard, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAllByUserID", ctx, userID)
	ret0, _ := ret[0].([]*models.UserCard)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAllByUserID indicates an expected call of GetAllByUserID.
func (mr *MockCollectionsMockRecorder) GetAllByUserID(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAllByUserID", reflect.TypeOf((*MockCollections)(nil).GetAllByUserID), ctx, userID)
}

// MockMissionRepo is a mock of the mission repository surface.
type MockMissionRepo struct {
	ctrl     *gomock.Controller
	recorder *MockMissionRepoMockRecorder
	isgomock struct{}
}

// MockMissionRepoMockRecorder is the mock recorder for MockMissionRepo.
type MockMissionRepoMockRecorder struct {
	mock *MockMissionRepo
}

// NewMockMissionRepo creates a new mock instance.
func NewMockMissionRepo(ctrl *gomock.Controller) *MockMissionRepo {
	mock := &MockMissionRepo{ctrl: ctrl}
	mock.recorder = &MockMissionRepoMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMissionRepo) EXPECT() *MockMissionRepoMockRecorder {
	return m.recorder
}

// GetAllByUserID mocks base method.
func (m *MockMissionRepo) GetAllByUserID(ctx context.Context, userID string) ([]*models.Mission, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAllByUserID", ctx, userID)
	ret0, _ := ret[0].([]*models.Mission)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAllByUserID indicates an expected call of GetAllByUserID.
func (mr *MockMissionRepoMockRecorder) GetAllByUserID(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAllByUserID", reflect.TypeOf((*MockMissionRepo)(nil).GetAllByUserID), ctx, userID)
}

// EnsureDefaults mocks base method.
func (m *MockMissionRepo) EnsureDefaults(ctx context.Context, userID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "EnsureDefaults", ctx, userID)
	ret0, _ := ret[0].(error)
	return ret0
}

// EnsureDefaults indicates an expected call of EnsureDefaults.
func (mr *MockMissionRepoMockRecorder) EnsureDefaults(ctx, userID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "EnsureDefaults", reflect.TypeOf((*MockMissionRepo)(nil).EnsureDefaults), ctx, userID)
}

// AddProgress mocks base method.
func (m *MockMissionRepo) AddProgress(ctx context.Context, userID, missionID string, n int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddProgress", ctx, userID, missionID, n)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddProgress indicates an expected call of AddProgress.
func (mr *MockMissionRepoMockRecorder) AddProgress(ctx, userID, missionID, n any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddProgress", reflect.TypeOf((*MockMissionRepo)(nil).AddProgress), ctx, userID, missionID, n)
}

// Claim mocks base method.
func (m *MockMissionRepo) Claim(ctx context.Context, userID, missionID string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Claim", ctx, userID, missionID)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Claim indicates an expected call of Claim.
func (mr *MockMissionRepoMockRecorder) Claim(ctx, userID, missionID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Claim", reflect.TypeOf((*MockMissionRepo)(nil).Claim), ctx, userID, missionID)
}
