package goAccount

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type mockDirectory struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*Account

	createErr error
	saveErr   error

	findCalls   int
	createCalls int
	saveCalls   int
}

func newMockDirectory() *mockDirectory {
	return &mockDirectory{
		nextID: 1,
		byID:   make(map[int64]*Account),
	}
}

func cloneAccount(a *Account) *Account {
	if a == nil {
		return nil
	}
	copied := *a
	return &copied
}

func (m *mockDirectory) FindByEmail(_ context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++

	for _, a := range m.byID {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, nil
}

func (m *mockDirectory) FindByUsername(_ context.Context, username string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++

	for _, a := range m.byID {
		if a.Username != "" && a.Username == username {
			return cloneAccount(a), nil
		}
	}
	return nil, nil
}

func (m *mockDirectory) FindByID(_ context.Context, id int64) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++

	return cloneAccount(m.byID[id]), nil
}

func (m *mockDirectory) Create(_ context.Context, account *Account) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++

	if m.createErr != nil {
		return nil, m.createErr
	}

	stored := cloneAccount(account)
	stored.ID = m.nextID
	m.nextID++
	m.byID[stored.ID] = stored

	return cloneAccount(stored), nil
}

func (m *mockDirectory) Save(_ context.Context, account *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++

	if m.saveErr != nil {
		return m.saveErr
	}
	if _, ok := m.byID[account.ID]; !ok {
		return nil
	}
	m.byID[account.ID] = cloneAccount(account)
	return nil
}

func (m *mockDirectory) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

func (m *mockDirectory) get(id int64) *Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAccount(m.byID[id])
}

type mockAccessKeyStore struct {
	mu        sync.Mutex
	records   []AccessKeyRecord
	createErr error
}

func (m *mockAccessKeyStore) ListByAccount(_ context.Context, accountID int64) ([]AccessKeyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []AccessKeyRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].AccountID == accountID {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

func (m *mockAccessKeyStore) FindByAccountAndName(_ context.Context, accountID int64, name string) (*AccessKeyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].AccountID == accountID && m.records[i].Name == name {
			copied := m.records[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockAccessKeyStore) Create(_ context.Context, record *AccessKeyRecord) (*AccessKeyRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return nil, m.createErr
	}

	m.records = append(m.records, *record)
	copied := *record
	return &copied, nil
}

type mockCollaboratorLookup struct {
	// roles[appName][accountID] = role tag
	roles map[string]map[int64]string
}

func (m *mockCollaboratorLookup) FindByAppAndAccount(_ context.Context, appName string, accountID int64) (*CollaboratorRole, error) {
	role, ok := m.roles[appName][accountID]
	if !ok {
		return nil, nil
	}
	return &CollaboratorRole{
		AccountID: accountID,
		AppName:   appName,
		Role:      role,
	}, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type mockMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

func (m *mockMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}

func (m *mockMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *mockMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

type testFixture struct {
	engine  *Engine
	dir     *mockDirectory
	keys    *mockAccessKeyStore
	collabs *mockCollaboratorLookup
	mailer  *mockMailer
	redis   *miniredis.Miniredis
}

// fastTestConfig keeps argon2 cheap so the suite stays quick.
func fastTestConfig() Config {
	cfg := defaultConfig()
	cfg.Security.MaxLoginAttempts = 3
	cfg.Password.Memory = 8 * 1024
	cfg.Password.Time = 1
	cfg.Password.Parallelism = 1
	cfg.Password.UpgradeOnLogin = false
	return cfg
}

func newTestFixture(t *testing.T, mutate func(*Config)) *testFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := fastTestConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	f := &testFixture{
		dir:     newMockDirectory(),
		keys:    &mockAccessKeyStore{},
		collabs: &mockCollaboratorLookup{roles: map[string]map[int64]string{}},
		mailer:  &mockMailer{},
		redis:   mr,
	}

	engine, err := New().
		WithConfig(cfg).
		WithRedis(client).
		WithUserDirectory(f.dir).
		WithAccessKeyStore(f.keys).
		WithCollaboratorLookup(f.collabs).
		WithMailer(f.mailer).
		Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	t.Cleanup(engine.Close)

	f.engine = engine
	return f
}

func (f *testFixture) mustRegister(t *testing.T, email, passwd string) *Account {
	t.Helper()

	account, err := f.engine.Register(context.Background(), email, passwd)
	if err != nil {
		t.Fatalf("Register(%s) error: %v", email, err)
	}
	return account
}
