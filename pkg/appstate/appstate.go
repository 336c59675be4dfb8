// Package appstate is the application-wide UI and domain state store:
// language, transient UI flags, the cached listing collections, active
// filters, map viewport and toasts, plus the derived views pages render
// from. One Store per app; construct fresh instances in tests.
package appstate

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/AymanChabbaki/safaria-sub000/pkg/catalog"
	"github.com/AymanChabbaki/safaria-sub000/pkg/i18n"
	"github.com/AymanChabbaki/safaria-sub000/pkg/localstore"
)

// KeyLanguage is the only durable key: language survives a reload,
// everything else is session-scoped.
const KeyLanguage = "safaria_language"

// Filter defaults.
const (
	DefaultCategory = "all"
	DefaultPriceMin = 0
	DefaultPriceMax = 5000
)

// Tags applied by AllItems. Note the historical "artisanat" spelling:
// favorites and map markers use "artisan", this store does not. Filter
// categories that should match artisans here must use TagArtisanat.
const (
	TagArtisanat = "artisanat"
	TagSejour    = "sejour"
	TagCaravane  = "caravane"
)

// Document receives the global language/direction mutation. A UI shell
// applies it to its root element; tests record it.
type Document interface {
	SetLanguage(lang, dir string)
}

// NopDocument ignores language changes.
type NopDocument struct{}

func (NopDocument) SetLanguage(string, string) {}

// Filters is the active filter set. PriceRange is inclusive on both
// ends; callers are responsible for min <= max.
type Filters struct {
	Category    string     `json:"category"`
	PriceRange  [2]float64 `json:"priceRange"`
	SearchQuery string     `json:"searchQuery"`
}

// FilterPatch merges into Filters; nil fields are left untouched.
// The merge is shallow: PriceRange is replaced wholesale.
type FilterPatch struct {
	Category    *string
	PriceRange  *[2]float64
	SearchQuery *string
}

// Toast is a transient notification.
type Toast struct {
	ID       int64
	Message  string
	Type     string
	Duration time.Duration
}

// Item is a cached listing tagged with its collection of origin.
type Item struct {
	catalog.Listing
	Type string `json:"type"`
}

// Dialog identifies the currently open dialog, if any.
type Dialog struct {
	Name    string
	Payload interface{}
}

type persistedLanguage struct {
	Language string `json:"language"`
}

// Store holds all state behind one mutex. The source ran single
// threaded; the lock is what gives each mutator the same atomicity.
type Store struct {
	mu      sync.Mutex
	storage localstore.Store
	doc     Document

	language       string
	loading        bool
	lastError      string
	dialog         *Dialog
	mobileMenuOpen bool
	toasts         []Toast

	artisans    []catalog.Listing
	sejours     []catalog.Listing
	caravanes   []catalog.Listing
	lastFetched time.Time

	filters      Filters
	selectedItem *Item
	mapCenter    [2]float64
	mapZoom      int
}

// DefaultCenter is the initial map viewport (central Morocco).
var DefaultCenter = [2]float64{31.7917, -7.0926}

// DefaultZoom is the initial map zoom level.
const DefaultZoom = 6

// New builds a store, restoring the persisted language (default "fr")
// and applying it to doc. A nil doc behaves like NopDocument.
func New(storage localstore.Store, doc Document) *Store {
	if doc == nil {
		doc = NopDocument{}
	}
	s := &Store{
		storage:   storage,
		doc:       doc,
		language:  i18n.DefaultLanguage,
		filters:   defaultFilters(),
		mapCenter: DefaultCenter,
		mapZoom:   DefaultZoom,
	}
	if raw, ok := storage.Get(KeyLanguage); ok {
		var p persistedLanguage
		if err := json.Unmarshal([]byte(raw), &p); err == nil && p.Language != "" {
			s.language = p.Language
		}
	}
	doc.SetLanguage(s.language, i18n.Dir(s.language))
	return s
}

func defaultFilters() Filters {
	return Filters{
		Category:   DefaultCategory,
		PriceRange: [2]float64{DefaultPriceMin, DefaultPriceMax},
	}
}

// --- Language ---

// SetLanguage updates the language, flips the document direction in the
// same critical section, and persists the choice.
func (s *Store) SetLanguage(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = code
	s.doc.SetLanguage(code, i18n.Dir(code))
	raw, _ := json.Marshal(persistedLanguage{Language: code})
	s.storage.Set(KeyLanguage, string(raw))
}

// Language returns the current language code.
func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// --- Loading / error / dialog / menu ---

// SetLoading sets the global loading flag.
func (s *Store) SetLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Loading reports the global loading flag.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetError overwrites the global error message (last write wins).
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
}

// ClearError resets the global error message.
func (s *Store) ClearError() {
	s.SetError("")
}

// Err returns the global error message, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// OpenDialog shows a dialog, replacing any open one (no stacking).
func (s *Store) OpenDialog(name string, payload interface{}) {
	s.mu.Lock()
	s.dialog = &Dialog{Name: name, Payload: payload}
	s.mu.Unlock()
}

// CloseDialog dismisses the current dialog.
func (s *Store) CloseDialog() {
	s.mu.Lock()
	s.dialog = nil
	s.mu.Unlock()
}

// CurrentDialog returns the open dialog, or nil.
func (s *Store) CurrentDialog() *Dialog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialog
}

// SetMobileMenu sets the mobile menu visibility.
func (s *Store) SetMobileMenu(open bool) {
	s.mu.Lock()
	s.mobileMenuOpen = open
	s.mu.Unlock()
}

// ToggleMobileMenu flips the mobile menu visibility.
func (s *Store) ToggleMobileMenu() {
	s.mu.Lock()
	s.mobileMenuOpen = !s.mobileMenuOpen
	s.mu.Unlock()
}

// MobileMenuOpen reports the mobile menu visibility.
func (s *Store) MobileMenuOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mobileMenuOpen
}

// --- Selected item / map viewport ---

// SetSelectedItem records the listing the UI is focused on.
func (s *Store) SetSelectedItem(item *Item) {
	s.mu.Lock()
	s.selectedItem = item
	s.mu.Unlock()
}

// SelectedItem returns the focused listing, or nil.
func (s *Store) SelectedItem() *Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedItem
}

// SetMapCenter moves the map viewport.
func (s *Store) SetMapCenter(lat, lng float64) {
	s.mu.Lock()
	s.mapCenter = [2]float64{lat, lng}
	s.mu.Unlock()
}

// SetMapZoom sets the map zoom level.
func (s *Store) SetMapZoom(zoom int) {
	s.mu.Lock()
	s.mapZoom = zoom
	s.mu.Unlock()
}

// FocusOnItem centers the map on a position. Zoom defaults to 13 when
// not given.
func (s *Store) FocusOnItem(lat, lng float64, zoom ...int) {
	z := 13
	if len(zoom) > 0 {
		z = zoom[0]
	}
	s.mu.Lock()
	s.mapCenter = [2]float64{lat, lng}
	s.mapZoom = z
	s.mu.Unlock()
}

// MapCenter returns the viewport center.
func (s *Store) MapCenter() [2]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapCenter
}

// MapZoom returns the viewport zoom.
func (s *Store) MapZoom() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapZoom
}

// --- Filters ---

// SetCategory merges the category filter key.
func (s *Store) SetCategory(category string) {
	s.mu.Lock()
	s.filters.Category = category
	s.mu.Unlock()
}

// SetPriceRange replaces the price range wholesale.
func (s *Store) SetPriceRange(min, max float64) {
	s.mu.Lock()
	s.filters.PriceRange = [2]float64{min, max}
	s.mu.Unlock()
}

// SetSearchQuery merges the search query filter key.
func (s *Store) SetSearchQuery(q string) {
	s.mu.Lock()
	s.filters.SearchQuery = q
	s.mu.Unlock()
}

// SetFilters merges every non-nil field of the patch.
func (s *Store) SetFilters(p FilterPatch) {
	s.mu.Lock()
	if p.Category != nil {
		s.filters.Category = *p.Category
	}
	if p.PriceRange != nil {
		s.filters.PriceRange = *p.PriceRange
	}
	if p.SearchQuery != nil {
		s.filters.SearchQuery = *p.SearchQuery
	}
	s.mu.Unlock()
}

// ResetFilters restores {all, [0,5000], ""}.
func (s *Store) ResetFilters() {
	s.mu.Lock()
	s.filters = defaultFilters()
	s.mu.Unlock()
}

// Filters returns a copy of the active filter set.
func (s *Store) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// --- Domain cache ---

// SetArtisans replaces the artisan collection wholesale and stamps the
// fetch time. There is no partial-update path.
func (s *Store) SetArtisans(items []catalog.Listing) {
	s.mu.Lock()
	s.artisans = items
	s.lastFetched = time.Now()
	s.mu.Unlock()
}

// SetSejours replaces the stays collection wholesale.
func (s *Store) SetSejours(items []catalog.Listing) {
	s.mu.Lock()
	s.sejours = items
	s.lastFetched = time.Now()
	s.mu.Unlock()
}

// SetCaravanes replaces the caravan collection wholesale.
func (s *Store) SetCaravanes(items []catalog.Listing) {
	s.mu.Lock()
	s.caravanes = items
	s.lastFetched = time.Now()
	s.mu.Unlock()
}

// SetAllItems replaces all three collections at once.
func (s *Store) SetAllItems(artisans, sejours, caravanes []catalog.Listing) {
	s.mu.Lock()
	s.artisans = artisans
	s.sejours = sejours
	s.caravanes = caravanes
	s.lastFetched = time.Now()
	s.mu.Unlock()
}

// ClearItemsCache empties the three collections and the fetch stamp.
func (s *Store) ClearItemsCache() {
	s.mu.Lock()
	s.artisans = nil
	s.sejours = nil
	s.caravanes = nil
	s.lastFetched = time.Time{}
	s.mu.Unlock()
}

// Artisans returns the cached artisan collection.
func (s *Store) Artisans() []catalog.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artisans
}

// Sejours returns the cached stays collection.
func (s *Store) Sejours() []catalog.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sejours
}

// Caravanes returns the cached caravan collection.
func (s *Store) Caravanes() []catalog.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caravanes
}

// LastFetched returns when a collection was last replaced, or the zero
// time when the cache is empty.
func (s *Store) LastFetched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFetched
}

// --- Derived views ---

// AllItems concatenates the three cached collections, tagging each
// element with its collection of origin.
func (s *Store) AllItems() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allItemsLocked()
}

func (s *Store) allItemsLocked() []Item {
	out := make([]Item, 0, len(s.artisans)+len(s.sejours)+len(s.caravanes))
	for _, l := range s.artisans {
		out = append(out, Item{Listing: l, Type: TagArtisanat})
	}
	for _, l := range s.sejours {
		out = append(out, Item{Listing: l, Type: TagSejour})
	}
	for _, l := range s.caravanes {
		out = append(out, Item{Listing: l, Type: TagCaravane})
	}
	return out
}

// FilteredItems narrows AllItems by category, then price (inclusive),
// then case-insensitive substring search over name and description.
// The passes apply in that fixed order, each over the previous result.
func (s *Store) FilteredItems() []Item {
	s.mu.Lock()
	items := s.allItemsLocked()
	f := s.filters
	lang := s.language
	s.mu.Unlock()

	if f.Category != DefaultCategory {
		kept := items[:0]
		for _, it := range items {
			if it.Type == f.Category {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	kept := items[:0]
	for _, it := range items {
		if it.Price >= f.PriceRange[0] && it.Price <= f.PriceRange[1] {
			kept = append(kept, it)
		}
	}
	items = kept

	if f.SearchQuery != "" {
		q := strings.ToLower(f.SearchQuery)
		kept := items[:0]
		for _, it := range items {
			name := strings.ToLower(it.DisplayName(lang))
			desc := strings.ToLower(it.DisplayDescription(lang))
			if strings.Contains(name, q) || strings.Contains(desc, q) {
				kept = append(kept, it)
			}
		}
		items = kept
	}
	return items
}

// --- Toasts ---

// AddToast appends a notification and schedules its removal. typ
// defaults to "info", duration to 3s. IDs come from the nanosecond
// clock; two toasts in the same instant could collide, which is
// acceptable for a notification list.
func (s *Store) AddToast(message, typ string, duration time.Duration) int64 {
	if typ == "" {
		typ = "info"
	}
	if duration == 0 {
		duration = 3 * time.Second
	}
	id := time.Now().UnixNano()

	s.mu.Lock()
	s.toasts = append(s.toasts, Toast{ID: id, Message: message, Type: typ, Duration: duration})
	s.mu.Unlock()

	time.AfterFunc(duration, func() { s.RemoveToast(id) })
	return id
}

// RemoveToast removes a toast immediately. Unknown IDs are ignored.
func (s *Store) RemoveToast(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// Toasts returns a copy of the visible toasts.
func (s *Store) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Toast, len(s.toasts))
	copy(out, s.toasts)
	return out
}

// --- Reset ---

// Reset restores every field to its default in one critical section.
// Language is intentionally kept: it is the one persisted preference.
func (s *Store) Reset() {
	s.mu.Lock()
	s.loading = false
	s.lastError = ""
	s.dialog = nil
	s.mobileMenuOpen = false
	s.toasts = nil
	s.artisans = nil
	s.sejours = nil
	s.caravanes = nil
	s.lastFetched = time.Time{}
	s.filters = defaultFilters()
	s.selectedItem = nil
	s.mapCenter = DefaultCenter
	s.mapZoom = DefaultZoom
	s.mu.Unlock()
}
