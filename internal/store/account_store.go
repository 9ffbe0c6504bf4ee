package store

import (
	"errors"
	"sort"
	"sync"

	"bankcore/internal/models"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account already exists")
	ErrLastAdmin        = errors.New("cannot remove the last admin account")
)

// AccountStore is the in-memory account table. Usernames and account
// numbers are distinct lookup namespaces over the same records.
type AccountStore struct {
	mu       sync.RWMutex
	byID     map[string]*models.Account
	byNumber map[string]string
	byName   map[string]string

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		byID:     make(map[string]*models.Account),
		byNumber: make(map[string]string),
		byName:   make(map[string]string),
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *AccountStore) Create(account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[account.ID]; ok {
		return ErrDuplicateAccount
	}
	if _, ok := s.byNumber[account.AccountNumber]; ok {
		return ErrDuplicateAccount
	}
	if _, ok := s.byName[account.Username]; ok {
		return ErrDuplicateAccount
	}
	stored := account
	s.byID[account.ID] = &stored
	s.byNumber[account.AccountNumber] = account.ID
	s.byName[account.Username] = account.ID
	return nil
}

func (s *AccountStore) GetByID(accountID string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.byID[accountID]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}
	return *account, nil
}

func (s *AccountStore) GetByNumber(number string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byNumber[number]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}
	return *s.byID[id], nil
}

// ResolveIdentifier finds an account by username or account number,
// the two namespaces a login may arrive through.
func (s *AccountStore) ResolveIdentifier(identifier string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.byName[identifier]; ok {
		return *s.byID[id], nil
	}
	if id, ok := s.byNumber[identifier]; ok {
		return *s.byID[id], nil
	}
	return models.Account{}, ErrAccountNotFound
}

// Update replaces the stored record for account.ID. The username and
// account number are re-indexed if they changed.
func (s *AccountStore) Update(account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.byID[account.ID]
	if !ok {
		return ErrAccountNotFound
	}
	if current.AccountNumber != account.AccountNumber {
		if _, taken := s.byNumber[account.AccountNumber]; taken {
			return ErrDuplicateAccount
		}
		delete(s.byNumber, current.AccountNumber)
		s.byNumber[account.AccountNumber] = account.ID
	}
	if current.Username != account.Username {
		if _, taken := s.byName[account.Username]; taken {
			return ErrDuplicateAccount
		}
		delete(s.byName, current.Username)
		s.byName[account.Username] = account.ID
	}
	stored := account
	s.byID[account.ID] = &stored
	return nil
}

// Delete removes an account. The last remaining admin cannot be removed.
func (s *AccountStore) Delete(accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.byID[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	if account.Role == models.RoleAdmin && s.adminCountLocked() <= 1 {
		return ErrLastAdmin
	}
	delete(s.byNumber, account.AccountNumber)
	delete(s.byName, account.Username)
	delete(s.byID, accountID)
	return nil
}

func (s *AccountStore) ListAll() []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	accounts := make([]models.Account, 0, len(s.byID))
	for _, account := range s.byID {
		accounts = append(accounts, *account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountNumber < accounts[j].AccountNumber
	})
	return accounts
}

func (s *AccountStore) adminCountLocked() int {
	count := 0
	for _, account := range s.byID {
		if account.Role == models.RoleAdmin {
			count++
		}
	}
	return count
}

// LockNumber takes the per-account mutex for one account number and
// returns the unlock function.
func (s *AccountStore) LockNumber(number string) func() {
	m := s.mutexFor(number)
	m.Lock()
	return m.Unlock
}

// LockPair takes the per-account mutexes for two account numbers in
// number order, so concurrent transfers touching the same accounts
// cannot deadlock or interleave their validate-then-mutate sequence.
func (s *AccountStore) LockPair(first, second string) func() {
	left, right := first, second
	if right < left {
		left, right = right, left
	}
	leftMu := s.mutexFor(left)
	rightMu := s.mutexFor(right)
	leftMu.Lock()
	if left != right {
		rightMu.Lock()
	}
	return func() {
		if left != right {
			rightMu.Unlock()
		}
		leftMu.Unlock()
	}
}

func (s *AccountStore) mutexFor(number string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	m, ok := s.locks[number]
	if !ok {
		m = &sync.Mutex{}
		s.locks[number] = m
	}
	return m
}

func (s *AccountStore) Snapshot() []models.Account {
	return s.ListAll()
}

func (s *AccountStore) Restore(accounts []models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[string]*models.Account, len(accounts))
	s.byNumber = make(map[string]string, len(accounts))
	s.byName = make(map[string]string, len(accounts))
	for _, account := range accounts {
		if _, ok := s.byID[account.ID]; ok {
			return ErrDuplicateAccount
		}
		if _, ok := s.byNumber[account.AccountNumber]; ok {
			return ErrDuplicateAccount
		}
		if _, ok := s.byName[account.Username]; ok {
			return ErrDuplicateAccount
		}
		stored := account
		s.byID[account.ID] = &stored
		s.byNumber[account.AccountNumber] = account.ID
		s.byName[account.Username] = account.ID
	}
	return nil
}
