package pos

import (
	"sync"

	"github.com/google/uuid"
)

// Manager hands out one Session per operator so each cashier gets an
// independent cart. Sessions are created lazily and live until dropped.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	catalogSvc CatalogService
	directory  CustomerDirectory
	gateway    SaleGateway
	company    CompanyInfo

	currency       string
	defaultVATRate float64
}

// NewManager creates a session manager over the register's ports.
func NewManager(
	catalogSvc CatalogService,
	directory CustomerDirectory,
	gateway SaleGateway,
	company CompanyInfo,
	currency string,
	defaultVATRate float64,
) *Manager {
	return &Manager{
		sessions:       make(map[uuid.UUID]*Session),
		catalogSvc:     catalogSvc,
		directory:      directory,
		gateway:        gateway,
		company:        company,
		currency:       currency,
		defaultVATRate: defaultVATRate,
	}
}

// Session returns the operator's session, creating it if needed.
func (m *Manager) Session(operatorID uuid.UUID) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[operatorID]; ok {
		return s
	}
	s := NewSession(operatorID, m.catalogSvc, m.directory, m.gateway, m.company, m.currency, m.defaultVATRate)
	m.sessions[operatorID] = s
	return s
}

// Drop discards the operator's session. The next call to Session starts
// fresh.
func (m *Manager) Drop(operatorID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, operatorID)
}
