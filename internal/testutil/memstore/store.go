// Package memstore транзакционное хранилище в памяти для тестов use case.
// Повторяет поведение PostgreSQL, на которое опирается сервис: сериализуемые транзакции
// с откатом, частичные уникальные индексы и sentinel ошибки репозиториев.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
)

// Hook вызывается перед каждой операцией репозитория. Ненулевая ошибка прерывает операцию.
type Hook func(ctx context.Context, op string) error

// Store состояние хранилища
type Store struct {
	mu sync.Mutex

	hook Hook
	now  func() time.Time

	state state
}

type state struct {
	seq        int64
	services   map[int64]domain.Service
	records    map[int64]domain.AvailabilityRecord
	requests   map[int64]domain.BookingRequest
	requesters map[int64]domain.SlotRequester
}

type txKey struct{ store *Store }

// New создает пустое хранилище
func New() *Store {
	return &Store{
		now: time.Now,
		state: state{
			services:   make(map[int64]domain.Service),
			records:    make(map[int64]domain.AvailabilityRecord),
			requests:   make(map[int64]domain.BookingRequest),
			requesters: make(map[int64]domain.SlotRequester),
		},
	}
}

// SetHook устанавливает хук операций (nil снимает)
func (s *Store) SetHook(h Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = h
}

// Services репозиторий услуг
func (s *Store) Services() *Services { return &Services{s: s} }

// Availability репозиторий записей о датах
func (s *Store) Availability() *Availability { return &Availability{s: s} }

// Requests репозиторий заявок
func (s *Store) Requests() *Requests { return &Requests{s: s} }

// TxManager менеджер транзакций
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// AllRequests снимок всех заявок, упорядоченный по ID
func (s *Store) AllRequests() []domain.BookingRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.state.requests, func(r domain.BookingRequest) int64 { return r.ID })
}

// AllRecords снимок всех записей о датах, упорядоченный по ID
func (s *Store) AllRecords() []domain.AvailabilityRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.state.records, func(r domain.AvailabilityRecord) int64 { return r.ID })
}

// AllRequesters снимок всех связей заявителей, упорядоченный по ID
func (s *Store) AllRequesters() []domain.SlotRequester {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.state.requesters, func(r domain.SlotRequester) int64 { return r.ID })
}

// run выполняет fn под глобальной блокировкой, если вызов идет вне транзакции
func (s *Store) run(ctx context.Context, op string, fn func(st *state) error) error {
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.hook != nil {
		if err := s.hook(ctx, op); err != nil {
			return err
		}
	}
	return fn(&s.state)
}

func (s *Store) inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{store: s}).(bool)
	return v
}

func (st *state) nextID() int64 {
	st.seq++
	return st.seq
}

func (st *state) clone() state {
	return state{
		seq:        st.seq,
		services:   cloneMap(st.services),
		records:    cloneMap(st.records),
		requests:   cloneMap(st.requests),
		requesters: cloneMap(st.requesters),
	}
}

func cloneMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func sortedValues[V any](m map[int64]V, id func(V) int64) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b V) int {
		switch {
		case id(a) < id(b):
			return -1
		case id(a) > id(b):
			return 1
		default:
			return 0
		}
	})
	return out
}

// TxManager транзакции поверх Store: глобальная блокировка на время fn и откат снимка при ошибке
type TxManager struct {
	s *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.do(ctx, fn)
}

func (m *TxManager) do(ctx context.Context, fn func(ctx context.Context) error) error {
	s := m.s
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := s.state.clone()
	txCtx := context.WithValue(ctx, txKey{store: s}, true)

	err := fn(txCtx)
	if err == nil {
		// Как и в PostgreSQL, COMMIT с отмененным контекстом не проходит
		err = ctx.Err()
	}
	if err != nil {
		s.state = snapshot
		return err
	}
	return nil
}
