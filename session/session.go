package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Session holds the state of one client session that lives beyond a single statement; for now
// that is the session properties which have been set.
type Session struct {
	User  string
	Type  string
	Addr  string
	sesid uuid.UUID

	mutex      sync.Mutex
	properties map[string]string
}

func NewSession(user, typ, addr string) *Session {
	return &Session{
		User:       user,
		Type:       typ,
		Addr:       addr,
		sesid:      uuid.New(),
		properties: map[string]string{},
	}
}

func (ses *Session) String() string {
	return fmt.Sprintf("session-%s", ses.sesid)
}

// SetProperty sets the property named by key to val, replacing any previous value.
func (ses *Session) SetProperty(key, val string) {
	ses.mutex.Lock()
	defer ses.mutex.Unlock()

	if ses.properties == nil {
		ses.properties = map[string]string{}
	}
	ses.properties[key] = val
}

// ResetProperty removes the value set for key, if any; it returns whether there was a value.
func (ses *Session) ResetProperty(key string) bool {
	ses.mutex.Lock()
	defer ses.mutex.Unlock()

	_, ok := ses.properties[key]
	delete(ses.properties, key)
	return ok
}

func (ses *Session) Property(key string) (string, bool) {
	ses.mutex.Lock()
	defer ses.mutex.Unlock()

	val, ok := ses.properties[key]
	return val, ok
}

// SetProperties returns a copy of the properties which have been set in this session.
func (ses *Session) SetProperties() map[string]string {
	ses.mutex.Lock()
	defer ses.mutex.Unlock()

	props := make(map[string]string, len(ses.properties))
	for key, val := range ses.properties {
		props[key] = val
	}
	return props
}
