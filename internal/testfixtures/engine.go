package testfixtures

import (
	"strings"

	"github.com/example/parish-booking/internal/application"
	"github.com/example/parish-booking/internal/persistence"
)

// HashPassword marks a plaintext so fixtures avoid the cost of real key
// derivation while staying distinguishable from the raw secret.
func HashPassword(password string) string {
	return "plain:" + password
}

// VerifyPassword checks a secret against a hash produced by HashPassword.
func VerifyPassword(hash, password string) error {
	if strings.HasPrefix(hash, "plain:") && strings.TrimPrefix(hash, "plain:") == password {
		return nil
	}
	return application.ErrInvalidCredentials
}

// EngineFactory builds processors and engines wired with deterministic
// identifiers, a controllable clock, and the marked password scheme above.
type EngineFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// NewEngineFactory constructs a factory with a clock pinned to ReferenceTime
// and identifiers prefixed "id".
func NewEngineFactory() *EngineFactory {
	return &EngineFactory{
		Clock:       NewClock(ReferenceTime()),
		IDGenerator: NewIDGenerator("id"),
	}
}

// Processor returns a command processor using the factory's deterministic
// dependencies.
func (f *EngineFactory) Processor() *application.Processor {
	p := application.NewProcessor(f.IDGenerator.NextFunc(), f.Clock.NowFunc())
	p.SetPasswordFuncs(func(password string) (string, error) {
		return HashPassword(password), nil
	}, VerifyPassword)
	return p
}

// Engine returns an engine hosting a deterministic processor. A nil store
// keeps state in memory only.
func (f *EngineFactory) Engine(store persistence.SnapshotStore) *application.Engine {
	return application.NewEngine(f.Processor(), store, nil, nil)
}
