package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/gab-8323/crypto-portfolio-manager/types"
)

// Memory is a process-local store with the same behavior as Database. It
// backs tests and DSN-less development runs.
type Memory struct {
	mu           sync.Mutex
	holdings     map[int]types.Holding
	transactions []types.Transaction
	users        map[int]types.User

	nextHoldingID int
	nextTxID      int
	nextUserID    int
}

func NewMemory() *Memory {
	return &Memory{
		holdings: make(map[int]types.Holding),
		users:    make(map[int]types.User),
	}
}

func (m *Memory) GetHolding(_ context.Context, userID int, symbol string) (types.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.holdings {
		if h.UserID == userID && h.Symbol == symbol {
			return h, nil
		}
	}
	return types.Holding{}, ErrNotFound
}

func (m *Memory) GetHoldingByID(_ context.Context, userID, id int) (types.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.holdings[id]
	if !ok || h.UserID != userID {
		return types.Holding{}, ErrNotFound
	}
	return h, nil
}

func (m *Memory) ListHoldings(_ context.Context, userID int) ([]types.Holding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.Holding
	for _, h := range m.holdings {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) UpsertHolding(_ context.Context, h types.Holding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h.ID == 0 {
		m.nextHoldingID++
		h.ID = m.nextHoldingID
	}
	m.holdings[h.ID] = h
	return nil
}

func (m *Memory) DeleteHolding(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.holdings, id)
	return nil
}

func (m *Memory) AppendTransaction(_ context.Context, tx types.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextTxID++
	tx.ID = m.nextTxID
	m.transactions = append(m.transactions, tx)
	return nil
}

func (m *Memory) ListTransactions(_ context.Context, userID int) ([]types.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []types.Transaction
	for _, tx := range m.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *Memory) CreateUser(_ context.Context, u types.User) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Phone == u.Phone {
			return types.User{}, ErrDuplicateUser
		}
	}
	m.nextUserID++
	u.ID = m.nextUserID
	m.users[u.ID] = u
	return u, nil
}

func (m *Memory) GetUserByName(_ context.Context, name string) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Name == name {
			return u, nil
		}
	}
	return types.User{}, ErrNotFound
}

func (m *Memory) GetUserByID(_ context.Context, id int) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return types.User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) UpdateUserCurrency(_ context.Context, userID int, currency string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Currency = currency
	m.users[userID] = u
	return nil
}
