// Package taskstore owns the task collection and the rules that mutate it.
package taskstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/todo/internal/domain"
)

// Deps holds the collaborators of a Store.
// Nil Notifier, Clock, IDs and Logger are replaced with harmless defaults.
type Deps struct {
	Persist  domain.SnapshotStore
	Notifier domain.Notifier
	Clock    domain.Clock
	IDs      domain.IDGenerator
	Logger   domain.Logger
}

// Options holds task defaults and notification settings.
// Fields are ordered to minimize memory padding.
type Options struct {
	Categories      []domain.Category
	ReminderTitle   string
	DefaultCategory domain.Category
	DefaultPriority domain.Priority
}

// DefaultOptions returns the options matching domain.NewDefaultConfig.
func DefaultOptions() Options {
	return Options{
		Categories:      domain.DefaultCategories(),
		ReminderTitle:   domain.DefaultReminderTitle,
		DefaultCategory: domain.CategoryPersonal,
		DefaultPriority: domain.PriorityLow,
	}
}

// OptionsFromConfig derives Options from a validated configuration.
func OptionsFromConfig(cfg *domain.Config) Options {
	return Options{
		Categories:      cfg.Tasks.Categories,
		ReminderTitle:   cfg.Notify.Title,
		DefaultCategory: cfg.Tasks.DefaultCategory,
		DefaultPriority: cfg.Tasks.DefaultPriority,
	}
}

// Store is the single owner of the task collection.
// All methods are safe for concurrent use.
type Store struct {
	persist  domain.SnapshotStore
	notifier domain.Notifier
	clock    domain.Clock
	ids      domain.IDGenerator
	logger   domain.Logger
	saveErr  error
	tasks    []*domain.Task
	opts     Options
	mu       sync.Mutex
	// saveBlocked is set when the last Load failed, so the unreadable
	// snapshot is not overwritten by an empty collection.
	saveBlocked bool
}

// New creates an empty Store. Call Load to populate it from the snapshot.
func New(deps Deps, opts Options) *Store {
	if deps.Notifier == nil {
		deps.Notifier = nopNotifier{}
	}
	if deps.Clock == nil {
		deps.Clock = domain.RealClock{}
	}
	if deps.IDs == nil {
		deps.IDs = UUIDGenerator{}
	}
	if deps.Logger == nil {
		deps.Logger = domain.NopLogger{}
	}
	if len(opts.Categories) == 0 {
		opts.Categories = domain.DefaultCategories()
	}
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = opts.Categories[0]
	}
	if opts.DefaultPriority == "" {
		opts.DefaultPriority = domain.PriorityLow
	}
	if opts.ReminderTitle == "" {
		opts.ReminderTitle = domain.DefaultReminderTitle
	}
	return &Store{
		persist:  deps.Persist,
		notifier: deps.Notifier,
		clock:    deps.Clock,
		ids:      deps.IDs,
		logger:   deps.Logger,
		opts:     opts,
	}
}

// Load replaces the collection with the persisted snapshot.
// A missing or empty snapshot yields an empty collection. When the snapshot
// cannot be read or decoded the collection is left empty and saving stays
// disabled until a later Load succeeds.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = nil
	if s.persist == nil {
		return nil
	}

	data, err := s.persist.Load(ctx)
	if err != nil {
		s.saveBlocked = true
		s.logger.Error("", "store", fmt.Sprintf("load snapshot: %v", err))
		return fmt.Errorf("load snapshot: %w", err)
	}
	tasks, err := Decode(data)
	if err != nil {
		s.saveBlocked = true
		s.logger.Error("", "store", err.Error())
		return err
	}

	s.tasks = s.normalize(tasks)
	s.saveBlocked = false
	s.logger.Debug("", "store", fmt.Sprintf("loaded %d tasks", len(s.tasks)))
	return nil
}

// normalize fills defaults missing from older snapshots and re-keys duplicate ids.
func (s *Store) normalize(tasks []*domain.Task) []*domain.Task {
	seen := make(map[domain.TaskID]bool, len(tasks))
	for _, t := range tasks {
		if t.Category == "" {
			t.Category = s.opts.DefaultCategory
		}
		if !t.Priority.IsValid() {
			t.Priority = s.opts.DefaultPriority
		}
		if t.ID == "" || seen[t.ID] {
			old := t.ID
			t.ID = s.freshID(seen)
			s.logger.Warn(t.ID, "store", fmt.Sprintf("duplicate id %q re-keyed", old))
		}
		seen[t.ID] = true
	}
	return tasks
}

// freshID returns a generated id that is not in taken.
func (s *Store) freshID(taken map[domain.TaskID]bool) domain.TaskID {
	for {
		id := s.ids.NewID()
		if id != "" && !taken[id] {
			return id
		}
	}
}

// CreateParams holds the fields of a new task.
// Empty Category and Priority select the configured defaults.
type CreateParams struct {
	DueDate  *domain.Date
	Text     string
	Category domain.Category
	Priority domain.Priority
}

// Create appends a new pending task and returns a copy of it.
func (s *Store) Create(ctx context.Context, p CreateParams) (*domain.Task, error) {
	text := domain.NormalizeText(p.Text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}
	category, priority, err := s.resolveFields(p.Category, p.Priority)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := &domain.Task{
		ID:        s.freshID(s.idSet()),
		Text:      text,
		CreatedAt: s.clock.Now(),
		DueDate:   cloneDate(p.DueDate),
		Category:  category,
		Priority:  priority,
	}
	s.tasks = append(s.tasks, task)
	s.logger.Info(task.ID, "store", "created")
	s.save(ctx)
	return task.Clone(), nil
}

// UpdateParams holds the replacement values of the editable fields.
// Empty Category and Priority select the configured defaults.
type UpdateParams struct {
	DueDate  *domain.Date
	Text     string
	Category domain.Category
	Priority domain.Priority
}

// Update replaces the editable fields of a task and re-arms both reminders.
// Completion state, creation time and id are kept.
func (s *Store) Update(ctx context.Context, id domain.TaskID, p UpdateParams) (*domain.Task, error) {
	text := domain.NormalizeText(p.Text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}
	category, priority, err := s.resolveFields(p.Category, p.Priority)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.find(id)
	if task == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	task.Text = text
	task.DueDate = cloneDate(p.DueDate)
	task.Category = category
	task.Priority = priority
	task.ResetReminders()

	s.logger.Info(task.ID, "store", "updated")
	s.save(ctx)
	return task.Clone(), nil
}

// ToggleComplete flips the completion flag. Reminder latches are left as they are.
func (s *Store) ToggleComplete(ctx context.Context, id domain.TaskID) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.find(id)
	if task == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	task.Completed = !task.Completed

	s.logger.Info(task.ID, "store", fmt.Sprintf("completed=%t", task.Completed))
	s.save(ctx)
	return task.Clone(), nil
}

// Delete removes a task. Deleting an unknown id does nothing.
func (s *Store) Delete(ctx context.Context, id domain.TaskID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.logger.Info(id, "store", "deleted")
			s.save(ctx)
			return nil
		}
	}
	return nil
}

// Get returns a copy of the task with the exact id.
func (s *Store) Get(id domain.TaskID) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := s.find(id)
	if task == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, id)
	}
	return task.Clone(), nil
}

// Resolve returns a copy of the task whose id equals ref or starts with it.
func (s *Store) Resolve(ref string) (*domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty id", domain.ErrTaskNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if task := s.find(domain.TaskID(ref)); task != nil {
		return task.Clone(), nil
	}
	var match *domain.Task
	for _, t := range s.tasks {
		if !strings.HasPrefix(string(t.ID), ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrAmbiguousID, ref)
		}
		match = t
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, ref)
	}
	return match.Clone(), nil
}

// Query returns copies of the matching tasks in display order.
// The collection itself is never reordered.
func (s *Store) Query(f domain.Filter) []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	domain.SortTasks(out)
	return out
}

// Stats returns completion counts over the whole collection.
func (s *Store) Stats() domain.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CountTasks(s.tasks)
}

// Categories returns the configured category set.
func (s *Store) Categories() []domain.Category {
	return append([]domain.Category(nil), s.opts.Categories...)
}

// EvaluateDueNotifications runs one reminder sweep at now.
// Each pending task due today or tomorrow whose latch is still armed gets
// one reminder and its latch set. If anything fired the collection is saved
// once, then one notification per reminder is sent. Notifier failures are
// logged and otherwise ignored.
func (s *Store) EvaluateDueNotifications(ctx context.Context, now time.Time) []domain.Reminder {
	s.mu.Lock()
	var reminders []domain.Reminder
	for _, t := range s.tasks {
		kind, ok := t.ReminderFor(now)
		if !ok {
			continue
		}
		t.MarkReminded(kind)
		reminders = append(reminders, domain.Reminder{Task: t.Clone(), Kind: kind})
	}
	if len(reminders) > 0 {
		s.save(ctx)
	}
	notifier, title, logger := s.notifier, s.opts.ReminderTitle, s.logger
	s.mu.Unlock()

	for _, r := range reminders {
		logger.Info(r.Task.ID, "remind", string(r.Kind))
		if err := notifier.Notify(ctx, title, r.Message()); err != nil {
			logger.Warn(r.Task.ID, "remind", fmt.Sprintf("notify: %v", err))
		}
	}
	return reminders
}

// ImportResult reports what Import did.
type ImportResult struct {
	Added   int
	Renamed int
}

// Import adds tasks from an export. With replace the current collection is
// discarded first. Tasks whose id is already taken get a fresh id.
func (s *Store) Import(ctx context.Context, tasks []*domain.Task, replace bool) (ImportResult, error) {
	var res ImportResult
	incoming := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		c := t.Clone()
		c.Text = domain.NormalizeText(c.Text)
		if c.Text == "" {
			return res, fmt.Errorf("import task %s: %w", t.ID, domain.ErrEmptyText)
		}
		if c.Category != "" {
			cat, err := domain.ParseCategory(string(c.Category), s.opts.Categories)
			if err != nil {
				return res, fmt.Errorf("import task %s: %w", t.ID, err)
			}
			c.Category = cat
		}
		incoming = append(incoming, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if replace {
		s.tasks = nil
	}
	taken := s.idSet()
	for _, t := range s.normalize(incoming) {
		if taken[t.ID] {
			t.ID = s.freshID(taken)
			res.Renamed++
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = s.clock.Now()
		}
		taken[t.ID] = true
		s.tasks = append(s.tasks, t)
		res.Added++
	}

	s.logger.Info("", "store", fmt.Sprintf("imported %d tasks (%d re-keyed, replace=%t)", res.Added, res.Renamed, replace))
	s.save(ctx)
	return res, nil
}

// Snapshot returns the encoded collection.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Encode(s.tasks)
}

// SaveErr returns the error of the last save attempt, or nil if it succeeded.
func (s *Store) SaveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}

// save writes the snapshot. Failures are recorded and logged; the in-memory
// collection stays authoritative. Callers hold s.mu.
func (s *Store) save(ctx context.Context) {
	if s.persist == nil {
		return
	}
	if s.saveBlocked {
		s.saveErr = domain.ErrSaveDisabled
		s.logger.Warn("", "store", s.saveErr.Error())
		return
	}
	data, err := Encode(s.tasks)
	if err == nil {
		err = s.persist.Save(ctx, data)
	}
	if err != nil {
		s.saveErr = fmt.Errorf("save snapshot: %w", err)
		s.logger.Error("", "store", s.saveErr.Error())
		return
	}
	s.saveErr = nil
}

func (s *Store) find(id domain.TaskID) *domain.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Store) idSet() map[domain.TaskID]bool {
	ids := make(map[domain.TaskID]bool, len(s.tasks))
	for _, t := range s.tasks {
		ids[t.ID] = true
	}
	return ids
}

func (s *Store) resolveFields(c domain.Category, p domain.Priority) (domain.Category, domain.Priority, error) {
	if c == "" {
		c = s.opts.DefaultCategory
	}
	if p == "" {
		p = s.opts.DefaultPriority
	}
	category, err := domain.ParseCategory(string(c), s.opts.Categories)
	if err != nil {
		return "", "", err
	}
	priority, err := domain.ParsePriority(string(p))
	if err != nil {
		return "", "", err
	}
	return category, priority, nil
}

func cloneDate(d *domain.Date) *domain.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	c := *d
	return &c
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, string, string) error { return nil }
