package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK RENTAL REPOSITORY
// ──────────────────────────────────────────────

// MockRentalRepository is a mock implementation of RentalRepository.
type MockRentalRepository struct {
	mu      sync.RWMutex
	rentals map[string]*domain.Rental

	// Counters for verification
	CreateCallCount         int32
	UpdateCallCount         int32
	GetByVehicleIDCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockRentalRepository creates a new mock rental repository.
func NewMockRentalRepository() *MockRentalRepository {
	return &MockRentalRepository{
		rentals: make(map[string]*domain.Rental),
	}
}

// AddRental adds a rental to the mock repository.
func (m *MockRentalRepository) AddRental(rental *domain.Rental) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rentals[rental.ID] = rental
}

func (m *MockRentalRepository) Create(ctx context.Context, rental *domain.Rental) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rentals[rental.ID] = rental
	return nil
}

func (m *MockRentalRepository) GetByID(ctx context.Context, id string) (*domain.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rental, ok := m.rentals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *rental
	return &copy, nil
}

func (m *MockRentalRepository) GetByVehicleID(ctx context.Context, vehicleID string) ([]*domain.Rental, error) {
	atomic.AddInt32(&m.GetByVehicleIDCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Rental, 0)
	for _, r := range m.rentals {
		if r.VehicleID == vehicleID {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockRentalRepository) GetAll(ctx context.Context) ([]*domain.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Rental, 0, len(m.rentals))
	for _, r := range m.rentals {
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockRentalRepository) Update(ctx context.Context, id string, patch domain.RentalPatch) (*domain.Rental, error) {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rental, ok := m.rentals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	if patch.VehicleID != nil {
		rental.VehicleID = *patch.VehicleID
	}
	if patch.DriverID != nil {
		rental.DriverID = *patch.DriverID
	}
	if patch.StartDate != nil {
		rental.Period.Start = domain.DateOnly(*patch.StartDate)
	}
	switch {
	case patch.ClearEnd:
		rental.Period = domain.OpenPeriod(rental.Period.Start)
	case patch.EndDate != nil:
		rental.Period = domain.ClosedPeriod(rental.Period.Start, *patch.EndDate)
	}
	if patch.Destination != nil {
		rental.Destination = *patch.Destination
	}
	if patch.Kilometers != nil {
		rental.Kilometers = patch.Kilometers
	}

	copy := *rental
	return &copy, nil
}

func (m *MockRentalRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rentals[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.rentals, id)
	return nil
}

// GetRental returns the rental by ID (for test assertions).
func (m *MockRentalRepository) GetRental(id string) *domain.Rental {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rentals[id]
}

// CountRentals returns the number of rentals.
func (m *MockRentalRepository) CountRentals() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rentals)
}

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle

	// Error injection
	CreateError error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vehicles {
		if v.Plate == plate {
			copy := *v
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[vehicle.ID]; !ok {
		return repository.ErrNotFound
	}
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.vehicles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.vehicles, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Error injection
	CreateError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetByCPF(ctx context.Context, cpf string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.CPF == cpf {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Driver, 0, len(m.drivers))
	for _, d := range m.drivers {
		copy := *d
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockDriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[driver.ID]; !ok {
		return repository.ErrNotFound
	}
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drivers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.drivers, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Error injection
	CreateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.CPF == user.CPF {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByCPF(ctx context.Context, cpf string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.CPF == cpf {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ──────────────────────────────────────────────
// MOCK FINE REPOSITORY
// ──────────────────────────────────────────────

// MockFineRepository is a mock implementation of FineRepository.
type MockFineRepository struct {
	mu    sync.RWMutex
	fines map[string]*domain.Fine
}

// NewMockFineRepository creates a new mock fine repository.
func NewMockFineRepository() *MockFineRepository {
	return &MockFineRepository{
		fines: make(map[string]*domain.Fine),
	}
}

// AddFine adds a fine to the mock repository.
func (m *MockFineRepository) AddFine(fine *domain.Fine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fines[fine.ID] = fine
}

func (m *MockFineRepository) Create(ctx context.Context, fine *domain.Fine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fines[fine.ID] = fine
	return nil
}

func (m *MockFineRepository) GetByID(ctx context.Context, id string) (*domain.Fine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fine, ok := m.fines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *fine
	return &copy, nil
}

func (m *MockFineRepository) GetAll(ctx context.Context) ([]*domain.Fine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Fine, 0, len(m.fines))
	for _, f := range m.fines {
		copy := *f
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockFineRepository) Update(ctx context.Context, fine *domain.Fine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.fines[fine.ID]; !ok {
		return repository.ErrNotFound
	}
	m.fines[fine.ID] = fine
	return nil
}

func (m *MockFineRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.fines[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.fines, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK MAINTENANCE REPOSITORY
// ──────────────────────────────────────────────

// MockMaintenanceRepository is a mock implementation of MaintenanceRepository.
type MockMaintenanceRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.Maintenance
}

// NewMockMaintenanceRepository creates a new mock maintenance repository.
func NewMockMaintenanceRepository() *MockMaintenanceRepository {
	return &MockMaintenanceRepository{
		records: make(map[string]*domain.Maintenance),
	}
}

// AddMaintenance adds a record to the mock repository.
func (m *MockMaintenanceRepository) AddMaintenance(record *domain.Maintenance) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
}

func (m *MockMaintenanceRepository) Create(ctx context.Context, record *domain.Maintenance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = record
	return nil
}

func (m *MockMaintenanceRepository) GetByID(ctx context.Context, id string) (*domain.Maintenance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *record
	return &copy, nil
}

func (m *MockMaintenanceRepository) GetAll(ctx context.Context) ([]*domain.Maintenance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Maintenance, 0, len(m.records))
	for _, r := range m.records {
		copy := *r
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockMaintenanceRepository) Update(ctx context.Context, record *domain.Maintenance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[record.ID]; !ok {
		return repository.ErrNotFound
	}
	m.records[record.ID] = record
	return nil
}

func (m *MockMaintenanceRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:vehicle:" + vehicleID
	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleaseVehicleLock(ctx context.Context, vehicleID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, "lock:vehicle:"+vehicleID)
	return nil
}

// IsLocked checks if a vehicle is locked (for test assertions).
func (m *MockLockStore) IsLocked(vehicleID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks["lock:vehicle:"+vehicleID]
	return exists && time.Now().Before(expiry)
}

// ──────────────────────────────────────────────
// FIXED CLOCK
// ──────────────────────────────────────────────

// FixedClock always reports the same instant, so "today" is stable in tests.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)
