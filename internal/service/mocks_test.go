package service

import (
	"context"
	"sync"
	"time"

	"github.com/Torqix/aarohan-backend/internal/domain"
	"github.com/Torqix/aarohan-backend/internal/events"
	"github.com/Torqix/aarohan-backend/internal/gateway"
	"github.com/Torqix/aarohan-backend/internal/repository"
)

// Mock repositories mirror the transactional guarantees of the Postgres
// implementations: every admission decision happens under one lock.

type mockEventRepo struct {
	mu     sync.Mutex
	events map[string]*domain.Event
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*domain.Event)}
}

func (m *mockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	copied := *event
	return &copied, nil
}

func (m *mockEventRepo) List(ctx context.Context, filter repository.EventFilter) ([]*domain.Event, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Event
	for _, e := range m.events {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		copied := *e
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (m *mockEventRepo) Update(ctx context.Context, event *domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(m.events, id)
	return nil
}

type mockRegistrationRepo struct {
	mu            sync.Mutex
	eventRepo     *mockEventRepo
	registrations map[string]*domain.Registration
	teams         map[string]*domain.Team // by id
	codes         map[string]string       // eventID+"/"+code -> teamID
}

func newMockRegistrationRepo(eventRepo *mockEventRepo) *mockRegistrationRepo {
	return &mockRegistrationRepo{
		eventRepo:     eventRepo,
		registrations: make(map[string]*domain.Registration),
		teams:         make(map[string]*domain.Team),
		codes:         make(map[string]string),
	}
}

func (m *mockRegistrationRepo) admitEvent(eventID string) (*domain.Event, error) {
	event, ok := m.eventRepo.events[eventID]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	if !event.AcceptsRegistrations() {
		return nil, domain.ErrEventCancelled
	}
	if event.IsFull() {
		return nil, domain.ErrEventFull
	}
	return event, nil
}

func (m *mockRegistrationRepo) Register(ctx context.Context, reg *domain.Registration, teamName string) (*domain.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventRepo.mu.Lock()
	defer m.eventRepo.mu.Unlock()

	event, err := m.admitEvent(reg.EventID)
	if err != nil {
		return nil, err
	}
	if event.IsTeamEvent && teamName == "" {
		return nil, domain.ErrTeamRequired
	}
	if !event.IsTeamEvent && teamName != "" {
		return nil, domain.ErrNotTeamEvent
	}
	if _, exists := m.registrations[reg.ID]; exists {
		return nil, domain.ErrAlreadyRegistered
	}

	reg.PaymentStatus = domain.PaymentStatusNotRequired
	if event.IsPaid {
		reg.PaymentStatus = domain.PaymentStatusPending
	}

	var team *domain.Team
	if teamName != "" {
		team, err = domain.NewTeam(reg.EventID, reg.UserID, teamName)
		if err != nil {
			return nil, err
		}
		m.teams[team.ID] = team
		m.codes[reg.EventID+"/"+team.InviteCode] = team.ID
		reg.AttachTeam(team.ID, team.Name, domain.TeamRoleLeader)
	}

	m.registrations[reg.ID] = reg
	event.CurrentParticipants++
	return team, nil
}

func (m *mockRegistrationRepo) JoinTeam(ctx context.Context, reg *domain.Registration, inviteCode string) (*domain.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventRepo.mu.Lock()
	defer m.eventRepo.mu.Unlock()

	event, err := m.admitEvent(reg.EventID)
	if err != nil {
		return nil, err
	}
	if !event.IsTeamEvent {
		return nil, domain.ErrNotTeamEvent
	}

	teamID, ok := m.codes[reg.EventID+"/"+inviteCode]
	if !ok {
		return nil, domain.ErrInvalidInviteCode
	}
	team := m.teams[teamID]
	if len(team.Members) >= event.MaxTeamSize {
		return nil, domain.ErrTeamFull
	}
	if _, exists := m.registrations[reg.ID]; exists {
		return nil, domain.ErrAlreadyRegistered
	}

	reg.PaymentStatus = domain.PaymentStatusNotRequired
	if event.IsPaid {
		reg.PaymentStatus = domain.PaymentStatusPending
	}
	reg.AttachTeam(team.ID, team.Name, domain.TeamRoleMember)

	m.registrations[reg.ID] = reg
	team.Members = append(team.Members, reg.UserID)
	event.CurrentParticipants++
	return team, nil
}

func (m *mockRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.registrations[id]
	if !ok {
		return nil, nil
	}
	copied := *reg
	return &copied, nil
}

func (m *mockRegistrationRepo) ListByEvent(ctx context.Context, eventID string, limit, offset int) ([]*domain.Registration, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Registration
	for _, r := range m.registrations {
		if r.EventID == eventID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (m *mockRegistrationRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Registration
	for _, r := range m.registrations {
		if r.UserID == userID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockRegistrationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.registrations[id]
	if !ok {
		return domain.ErrRegistrationNotFound
	}
	reg.Status = status
	reg.UpdatedAt = time.Now()
	return nil
}

func (m *mockRegistrationRepo) CheckIn(ctx context.Context, id, adminID string, at time.Time) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.registrations[id]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	if reg.CheckedIn {
		return nil, domain.ErrAlreadyCheckedIn
	}
	reg.CheckedIn = true
	reg.CheckedInAt = &at
	reg.CheckedInBy = adminID
	reg.UpdatedAt = at
	copied := *reg
	return &copied, nil
}

type mockTeamRepo struct {
	regRepo *mockRegistrationRepo
}

func newMockTeamRepo(regRepo *mockRegistrationRepo) *mockTeamRepo {
	return &mockTeamRepo{regRepo: regRepo}
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	m.regRepo.mu.Lock()
	defer m.regRepo.mu.Unlock()
	team, ok := m.regRepo.teams[id]
	if !ok {
		return nil, nil
	}
	copied := *team
	return &copied, nil
}

func (m *mockTeamRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Team, error) {
	m.regRepo.mu.Lock()
	defer m.regRepo.mu.Unlock()
	var out []*domain.Team
	for _, t := range m.regRepo.teams {
		if t.EventID == eventID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *mockTeamRepo) LargestSize(ctx context.Context, eventID string) (int, error) {
	m.regRepo.mu.Lock()
	defer m.regRepo.mu.Unlock()
	largest := 0
	for _, t := range m.regRepo.teams {
		if t.EventID == eventID && len(t.Members) > largest {
			largest = len(t.Members)
		}
	}
	return largest, nil
}

type mockPaymentRepo struct {
	mu       sync.Mutex
	regRepo  *mockRegistrationRepo
	payments map[string]*domain.Payment
}

func newMockPaymentRepo(regRepo *mockRegistrationRepo) *mockPaymentRepo {
	return &mockPaymentRepo{
		regRepo:  regRepo,
		payments: make(map[string]*domain.Payment),
	}
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
	return nil
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (m *mockPaymentRepo) GetPendingByRegistration(ctx context.Context, registrationID string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.RegistrationID == registrationID && p.Status == domain.PaymentStatusPending {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockPaymentRepo) SetGatewayOrder(ctx context.Context, paymentID, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[paymentID]
	if !ok || p.Status != domain.PaymentStatusPending {
		return domain.ErrPaymentNotPending
	}
	p.GatewayOrderID = orderID
	p.UpdatedAt = time.Now()
	return nil
}

func (m *mockPaymentRepo) CompleteWithRegistration(ctx context.Context, paymentID, gatewayPaymentID string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[paymentID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	if err := p.Complete(gatewayPaymentID); err != nil {
		return nil, err
	}

	m.regRepo.mu.Lock()
	defer m.regRepo.mu.Unlock()
	reg, ok := m.regRepo.registrations[p.RegistrationID]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	reg.PaymentStatus = domain.PaymentStatusCompleted
	reg.PaymentID = p.ID

	copied := *p
	return &copied, nil
}

func (m *mockPaymentRepo) FailWithRegistration(ctx context.Context, paymentID, reason string) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[paymentID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	if err := p.Fail(reason); err != nil {
		return nil, err
	}

	m.regRepo.mu.Lock()
	defer m.regRepo.mu.Unlock()
	reg, ok := m.regRepo.registrations[p.RegistrationID]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	reg.PaymentStatus = domain.PaymentStatusFailed

	copied := *p
	return &copied, nil
}

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.users[user.ID]; ok {
		existing.Email = user.Email
		existing.Name = user.Name
		existing.UpdatedAt = time.Now()
		copied := *existing
		return &copied, nil
	}
	m.users[user.ID] = user
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

// mockGateway fabricates orders and signs callbacks with a fixed secret so
// tests can produce valid and invalid signatures at will.
type mockGateway struct {
	mu       sync.Mutex
	secret   string
	orders   int
	created  []string
	orderErr error
}

func newMockGateway() *mockGateway {
	return &mockGateway{secret: "mock-gateway-secret"}
}

func (g *mockGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*gateway.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.orderErr != nil {
		return nil, g.orderErr
	}
	g.orders++
	id := "order_mock_" + receipt
	g.created = append(g.created, id)
	return &gateway.Order{ID: id, Amount: amountMinor, Currency: currency}, nil
}

func (g *mockGateway) VerifySignature(orderID, gatewayPaymentID, signature string) error {
	return gateway.VerifyHMAC(g.secret, orderID, gatewayPaymentID, signature)
}

func (g *mockGateway) KeyID() string {
	return "key_mock"
}

// recordingPublisher captures published events for assertions
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{}
}

func (p *recordingPublisher) Publish(ctx context.Context, topic, key string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) published(topic string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, t := range p.topics {
		if t == topic {
			count++
		}
	}
	return count
}

var _ events.Publisher = (*recordingPublisher)(nil)
var _ gateway.Gateway = (*mockGateway)(nil)
var _ repository.EventRepository = (*mockEventRepo)(nil)
var _ repository.RegistrationRepository = (*mockRegistrationRepo)(nil)
var _ repository.TeamRepository = (*mockTeamRepo)(nil)
var _ repository.PaymentRepository = (*mockPaymentRepo)(nil)
var _ repository.UserRepository = (*mockUserRepo)(nil)
