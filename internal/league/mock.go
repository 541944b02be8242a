package league

import "sync"

// MockStore is a mock implementation of the LeagueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetPlayersFunc              func() ([]Player, error)
	GetPlayerByCodeFunc         func(code int) (*Player, error)
	GetPlayersByRoleFunc        func(role Role) ([]Player, error)
	GetPlayersOrderedFunc       func(role Role, column string, desc bool) ([]Player, error)
	CountPlayersFunc            func() (int, error)
	CreatePlayerFunc            func(p Player) error
	UpdatePlayerFunc            func(p Player) error
	BulkCreatePlayersFunc       func(players []Player) error
	DeletePlayerFunc            func(code int) error
	DeleteAllPlayersFunc        func() error
	GetEvaluationsFunc          func(day int, role Role) ([]Evaluation, error)
	GetEvaluationsOrderedFunc   func(day int, role Role, column string, desc bool) ([]Evaluation, error)
	GetEvaluationFunc           func(code, day int) (*Evaluation, error)
	CreateEvaluationFunc        func(ev Evaluation) error
	UpdateEvaluationFunc        func(code, day int, fantaVote, vote float64, cost int) error
	BulkCreateEvaluationsFunc   func(evs []Evaluation) error
	DeleteEvaluationFunc        func(code, day int) error
	DeleteEvaluationsForDayFunc func(day int) error
	DeleteAllEvaluationsFunc    func() error
	GetDaysFunc                 func() ([]int, error)
	GetLastImportedDayFunc      func() (int, error)
	ExportSnapshotFunc          func() (*Snapshot, error)
	RestoreSnapshotFunc         func(snap *Snapshot) error

	// Call records
	CreatePlayerCalls            []Player
	UpdatePlayerCalls            []Player
	BulkCreatePlayersCalls       [][]Player
	BulkCreateEvaluationsCalls   [][]Evaluation
	DeleteEvaluationsForDayCalls []int
	DeletePlayerCalls            []int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) GetPlayers() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) GetPlayerByCode(code int) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayerByCodeFunc != nil {
		return m.GetPlayerByCodeFunc(code)
	}
	return nil, nil
}

func (m *MockStore) GetPlayersByRole(role Role) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayersByRoleFunc != nil {
		return m.GetPlayersByRoleFunc(role)
	}
	return nil, nil
}

func (m *MockStore) GetPlayersOrdered(role Role, column string, desc bool) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPlayersOrderedFunc != nil {
		return m.GetPlayersOrderedFunc(role, column, desc)
	}
	return nil, nil
}

func (m *MockStore) CountPlayers() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountPlayersFunc != nil {
		return m.CountPlayersFunc()
	}
	return 0, nil
}

func (m *MockStore) CreatePlayer(p Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreatePlayerCalls = append(m.CreatePlayerCalls, p)
	if m.CreatePlayerFunc != nil {
		return m.CreatePlayerFunc(p)
	}
	return nil
}

func (m *MockStore) UpdatePlayer(p Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdatePlayerCalls = append(m.UpdatePlayerCalls, p)
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(p)
	}
	return nil
}

func (m *MockStore) BulkCreatePlayers(players []Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BulkCreatePlayersCalls = append(m.BulkCreatePlayersCalls, players)
	if m.BulkCreatePlayersFunc != nil {
		return m.BulkCreatePlayersFunc(players)
	}
	return nil
}

func (m *MockStore) DeletePlayer(code int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, code)
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(code)
	}
	return nil
}

func (m *MockStore) DeleteAllPlayers() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteAllPlayersFunc != nil {
		return m.DeleteAllPlayersFunc()
	}
	return nil
}

func (m *MockStore) GetEvaluations(day int, role Role) ([]Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetEvaluationsFunc != nil {
		return m.GetEvaluationsFunc(day, role)
	}
	return nil, nil
}

func (m *MockStore) GetEvaluationsOrdered(day int, role Role, column string, desc bool) ([]Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetEvaluationsOrderedFunc != nil {
		return m.GetEvaluationsOrderedFunc(day, role, column, desc)
	}
	return nil, nil
}

func (m *MockStore) GetEvaluation(code, day int) (*Evaluation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetEvaluationFunc != nil {
		return m.GetEvaluationFunc(code, day)
	}
	return nil, nil
}

func (m *MockStore) CreateEvaluation(ev Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateEvaluationFunc != nil {
		return m.CreateEvaluationFunc(ev)
	}
	return nil
}

func (m *MockStore) UpdateEvaluation(code, day int, fantaVote, vote float64, cost int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateEvaluationFunc != nil {
		return m.UpdateEvaluationFunc(code, day, fantaVote, vote, cost)
	}
	return nil
}

func (m *MockStore) BulkCreateEvaluations(evs []Evaluation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BulkCreateEvaluationsCalls = append(m.BulkCreateEvaluationsCalls, evs)
	if m.BulkCreateEvaluationsFunc != nil {
		return m.BulkCreateEvaluationsFunc(evs)
	}
	return nil
}

func (m *MockStore) DeleteEvaluation(code, day int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteEvaluationFunc != nil {
		return m.DeleteEvaluationFunc(code, day)
	}
	return nil
}

func (m *MockStore) DeleteEvaluationsForDay(day int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteEvaluationsForDayCalls = append(m.DeleteEvaluationsForDayCalls, day)
	if m.DeleteEvaluationsForDayFunc != nil {
		return m.DeleteEvaluationsForDayFunc(day)
	}
	return nil
}

func (m *MockStore) DeleteAllEvaluations() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteAllEvaluationsFunc != nil {
		return m.DeleteAllEvaluationsFunc()
	}
	return nil
}

func (m *MockStore) GetDays() ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetDaysFunc != nil {
		return m.GetDaysFunc()
	}
	return nil, nil
}

func (m *MockStore) GetLastImportedDay() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetLastImportedDayFunc != nil {
		return m.GetLastImportedDayFunc()
	}
	return 0, nil
}

func (m *MockStore) ExportSnapshot() (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ExportSnapshotFunc != nil {
		return m.ExportSnapshotFunc()
	}
	return &Snapshot{}, nil
}

func (m *MockStore) RestoreSnapshot(snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RestoreSnapshotFunc != nil {
		return m.RestoreSnapshotFunc(snap)
	}
	return nil
}
