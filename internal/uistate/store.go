// Package uistate holds transient presentation state: independent UI flags
// and the ephemeral notification queue. Nothing here is persisted; every
// process start begins from defaults.
package uistate

import (
	"sync"
	"time"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Flags are independent booleans/enums. Each field is mutated only by its
// own setter and carries no derived invariants.
type Flags struct {
	SidebarOpen              bool
	SidebarCollapsed         bool
	ChatOpen                 bool
	CurrentChatSession       string
	CreatePatientModalOpen   bool
	CreateEncounterModalOpen bool
	CreateClaimModalOpen     bool
	GlobalLoading            bool
	Theme                    Theme
}

type Store struct {
	mu            sync.Mutex
	flags         Flags
	notifications []Notification
	timers        map[string]*time.Timer
	subs          []func()
}

func NewStore() *Store {
	return &Store{
		flags:  Flags{SidebarOpen: true, Theme: ThemeSystem},
		timers: make(map[string]*time.Timer),
	}
}

// Subscribe registers a callback invoked after every visible change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *Store) Flags() Flags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flags
}

func (s *Store) setFlag(mutate func(*Flags)) {
	s.mu.Lock()
	mutate(&s.flags)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) SetSidebarOpen(open bool)      { s.setFlag(func(f *Flags) { f.SidebarOpen = open }) }
func (s *Store) SetSidebarCollapsed(c bool)    { s.setFlag(func(f *Flags) { f.SidebarCollapsed = c }) }
func (s *Store) ToggleSidebar()                { s.setFlag(func(f *Flags) { f.SidebarOpen = !f.SidebarOpen }) }
func (s *Store) SetChatOpen(open bool)         { s.setFlag(func(f *Flags) { f.ChatOpen = open }) }
func (s *Store) SetCurrentChatSession(id string) {
	s.setFlag(func(f *Flags) { f.CurrentChatSession = id })
}
func (s *Store) SetCreatePatientModalOpen(open bool) {
	s.setFlag(func(f *Flags) { f.CreatePatientModalOpen = open })
}
func (s *Store) SetCreateEncounterModalOpen(open bool) {
	s.setFlag(func(f *Flags) { f.CreateEncounterModalOpen = open })
}
func (s *Store) SetCreateClaimModalOpen(open bool) {
	s.setFlag(func(f *Flags) { f.CreateClaimModalOpen = open })
}
func (s *Store) SetGlobalLoading(loading bool) { s.setFlag(func(f *Flags) { f.GlobalLoading = loading }) }
func (s *Store) SetTheme(theme Theme)          { s.setFlag(func(f *Flags) { f.Theme = theme }) }
