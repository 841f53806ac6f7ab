//go:build unit

// Package memstore is an in-memory unit of work for use-case tests. Every
// transaction holds one store-wide lock, so transactions never interleave, and
// a failed transaction restores the state it started from.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/reservation"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/resource"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/user"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/infra"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/queries"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/shared"
)

type resourceRow struct {
	id        int64
	name      string
	model     *string
	path      *string
	typeID    int64
	available bool
	createdAt time.Time
	updatedAt time.Time
}

type userRow struct {
	id         int64
	email      *string
	externalID *int64
	createdAt  time.Time
}

type reservationRow struct {
	id         int64
	resourceID int64
	userID     int64
	start      time.Time
	end        time.Time
	token      string
	createdAt  time.Time
	updatedAt  time.Time
}

type state struct {
	types             map[string]int64
	resources         map[int64]resourceRow
	users             map[int64]userRow
	reservations      map[int64]reservationRow
	nextTypeID        int64
	nextUserID        int64
	nextReservationID int64
}

func (s state) clone() state {
	out := s
	out.types = make(map[string]int64, len(s.types))
	for k, v := range s.types {
		out.types[k] = v
	}
	out.resources = make(map[int64]resourceRow, len(s.resources))
	for k, v := range s.resources {
		out.resources[k] = v
	}
	out.users = make(map[int64]userRow, len(s.users))
	for k, v := range s.users {
		out.users[k] = v
	}
	out.reservations = make(map[int64]reservationRow, len(s.reservations))
	for k, v := range s.reservations {
		out.reservations[k] = v
	}
	return out
}

type Store struct {
	mu    sync.Mutex
	data  state
	now   func() time.Time
	fails map[string]error
	locks []string
}

func New() *Store {
	return &Store{
		data: state{
			types:        map[string]int64{},
			resources:    map[int64]resourceRow{},
			users:        map[int64]userRow{},
			reservations: map[int64]reservationRow{},
		},
		now:   func() time.Time { return time.Now().UTC() },
		fails: map[string]error{},
	}
}

// WithClock sets the source of created_at and updated_at.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// FailOn makes the named operation ("resources.Update", "reservations.Create", ...)
// return err until cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fails, op)
		return
	}
	s.fails[op] = err
}

// Locks returns every lock key taken so far, in order.
func (s *Store) Locks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.locks...)
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(ctx, &memTx{s: s}); err != nil {
		s.data = snapshot
		return err
	}
	if err := s.checkDeferred(); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// checkDeferred mirrors the resource name constraint checked at commit.
func (s *Store) checkDeferred() error {
	names := make(map[string]struct{}, len(s.data.resources))
	for _, r := range s.data.resources {
		if _, dup := names[r.name]; dup {
			return infra.WrapRepoErr("duplicate resource name", nil, infra.KindUniqueViolation)
		}
		names[r.name] = struct{}{}
	}
	return nil
}

func (s *Store) fail(op string) error {
	return s.fails[op]
}

// Seed helpers run outside any transaction.

func (s *Store) SeedResource(r *resource.Resource, typeName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	typeID, ok := s.data.types[typeName]
	if !ok {
		s.data.nextTypeID++
		typeID = s.data.nextTypeID
		s.data.types[typeName] = typeID
	}
	now := s.now()
	s.data.resources[r.ID()] = resourceRow{
		id: r.ID(), name: r.Name(), model: r.Model(), path: r.Path(),
		typeID: typeID, available: r.Available(), createdAt: now, updatedAt: now,
	}
}

func (s *Store) SeedReservation(resourceID int64, email string, start, end time.Time, token string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := s.userIDByEmail(email)
	s.data.nextReservationID++
	id := s.data.nextReservationID
	now := s.now()
	s.data.reservations[id] = reservationRow{
		id: id, resourceID: resourceID, userID: uid, start: start, end: end,
		token: token, createdAt: now, updatedAt: now,
	}
	return id
}

func (s *Store) SeedUser(email *string, externalID *int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.nextUserID++
	id := s.data.nextUserID
	s.data.users[id] = userRow{id: id, email: email, externalID: externalID, createdAt: s.now()}
	return id
}

func (s *Store) userIDByEmail(email string) int64 {
	for _, u := range s.data.users {
		if u.email != nil && *u.email == email {
			return u.id
		}
	}
	s.data.nextUserID++
	e := email
	s.data.users[s.data.nextUserID] = userRow{id: s.data.nextUserID, email: &e, createdAt: s.now()}
	return s.data.nextUserID
}

// Snapshot accessors for assertions.

func (s *Store) Reservations() []*reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*reservation.Reservation, 0, len(s.data.reservations))
	for _, row := range s.data.reservations {
		out = append(out, row.toDomain())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (s *Store) Resources() []*resource.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*resource.Resource, 0, len(s.data.resources))
	for _, row := range s.data.resources {
		out = append(out, row.toDomain())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (s *Store) TypeNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.data.types))
	for name := range s.data.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.users)
}

func (r resourceRow) toDomain() *resource.Resource {
	return resource.ReconstructResource(r.id, r.name, r.model, r.path, r.typeID, r.available, r.createdAt, r.updatedAt)
}

func (r reservationRow) toDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(r.id, r.resourceID, r.userID,
		reservation.ReconstructTimeSlot(r.start, r.end), r.token, r.createdAt, r.updatedAt)
}

// overlaps is the inclusive predicate used by the SQL query and the exclusion constraint.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

type memTx struct {
	s *Store
}

func (t *memTx) Locks() shared.Locker                         { return lockRepo{t.s} }
func (t *memTx) ResourceTypes() shared.ResourceTypeRepository { return typeRepo{t.s} }
func (t *memTx) Resources() shared.ResourceRepository         { return resourceRepo{t.s} }
func (t *memTx) Users() shared.UserRepository                 { return userRepo{t.s} }
func (t *memTx) Reservations() shared.ReservationRepository   { return reservationRepo{t.s} }

type lockRepo struct{ s *Store }

func (l lockRepo) Lock(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.s.locks = append(l.s.locks, key)
	return nil
}

type typeRepo struct{ s *Store }

func (r typeRepo) Upsert(_ context.Context, name string) (int64, error) {
	if err := r.s.fail("resource_types.Upsert"); err != nil {
		return 0, err
	}
	if id, ok := r.s.data.types[name]; ok {
		return id, nil
	}
	r.s.data.nextTypeID++
	r.s.data.types[name] = r.s.data.nextTypeID
	return r.s.data.nextTypeID, nil
}

type resourceRepo struct{ s *Store }

func (r resourceRepo) FindByID(_ context.Context, id int64) (*resource.Resource, error) {
	row, ok := r.s.data.resources[id]
	if !ok {
		return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return row.toDomain(), nil
}

func (r resourceRepo) Create(_ context.Context, res *resource.Resource) error {
	if err := r.s.fail("resources.Create"); err != nil {
		return err
	}
	if _, ok := r.s.data.resources[res.ID()]; ok {
		return infra.WrapRepoErr("resource already exists", nil, infra.KindUniqueViolation)
	}
	now := r.s.now()
	r.s.data.resources[res.ID()] = resourceRow{
		id: res.ID(), name: res.Name(), model: res.Model(), path: res.Path(),
		typeID: res.TypeID(), available: res.Available(), createdAt: now, updatedAt: now,
	}
	return nil
}

func (r resourceRepo) Update(_ context.Context, res *resource.Resource) error {
	if err := r.s.fail("resources.Update"); err != nil {
		return err
	}
	row, ok := r.s.data.resources[res.ID()]
	if !ok {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	row.name, row.model, row.path = res.Name(), res.Model(), res.Path()
	row.typeID, row.available, row.updatedAt = res.TypeID(), res.Available(), r.s.now()
	r.s.data.resources[res.ID()] = row
	return nil
}

func (r resourceRepo) MarkUnavailableExcept(_ context.Context, keep []int64) (int64, error) {
	if err := r.s.fail("resources.MarkUnavailableExcept"); err != nil {
		return 0, err
	}
	kept := make(map[int64]struct{}, len(keep))
	for _, id := range keep {
		kept[id] = struct{}{}
	}
	var n int64
	for id, row := range r.s.data.resources {
		if _, ok := kept[id]; ok || !row.available {
			continue
		}
		row.available = false
		row.updatedAt = r.s.now()
		r.s.data.resources[id] = row
		n++
	}
	return n, nil
}

type userRepo struct{ s *Store }

func (r userRepo) Upsert(_ context.Context, identity user.Identity) (int64, error) {
	if err := r.s.fail("users.Upsert"); err != nil {
		return 0, err
	}
	email, ext := identity.Email(), identity.ExternalID()
	for id, u := range r.s.data.users {
		switch {
		case email != nil && u.email != nil && *u.email == *email:
			if err := identity.MatchStored(u.externalID); err != nil {
				return 0, err
			}
			if ext != nil && u.externalID == nil {
				if r.s.externalIDHolder(*ext) != 0 {
					return 0, infra.WrapRepoErr("external id already taken", nil, infra.KindUniqueViolation)
				}
				u.externalID = ext
				r.s.data.users[id] = u
			}
			return id, nil
		case email == nil && ext != nil && u.externalID != nil && *u.externalID == *ext:
			return id, nil
		}
	}
	return r.insert(email, ext)
}

func (r userRepo) FindByID(_ context.Context, id int64) (*user.User, error) {
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return user.ReconstructUser(u.id, u.email, u.externalID), nil
}

func (r userRepo) Create(_ context.Context, identity user.Identity) (int64, error) {
	if err := r.s.fail("users.Create"); err != nil {
		return 0, err
	}
	if email := identity.Email(); email != nil && r.s.emailHolder(*email) != 0 {
		return 0, infra.WrapRepoErr("email already taken", nil, infra.KindUniqueViolation)
	}
	return r.insert(identity.Email(), identity.ExternalID())
}

func (r userRepo) Update(_ context.Context, id int64, identity user.Identity) error {
	u, ok := r.s.data.users[id]
	if !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	email, ext := identity.Email(), identity.ExternalID()
	if email != nil {
		if holder := r.s.emailHolder(*email); holder != 0 && holder != id {
			return infra.WrapRepoErr("email already taken", nil, infra.KindUniqueViolation)
		}
	}
	if ext != nil {
		if holder := r.s.externalIDHolder(*ext); holder != 0 && holder != id {
			return infra.WrapRepoErr("external id already taken", nil, infra.KindUniqueViolation)
		}
	}
	u.email, u.externalID = email, ext
	r.s.data.users[id] = u
	return nil
}

func (r userRepo) Delete(_ context.Context, id int64) error {
	if err := r.s.fail("users.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.data.users[id]; !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	delete(r.s.data.users, id)
	for rid, row := range r.s.data.reservations {
		if row.userID == id {
			delete(r.s.data.reservations, rid)
		}
	}
	return nil
}

func (r userRepo) insert(email *string, ext *int64) (int64, error) {
	if ext != nil && r.s.externalIDHolder(*ext) != 0 {
		return 0, infra.WrapRepoErr("external id already taken", nil, infra.KindUniqueViolation)
	}
	r.s.data.nextUserID++
	id := r.s.data.nextUserID
	r.s.data.users[id] = userRow{id: id, email: email, externalID: ext, createdAt: r.s.now()}
	return id, nil
}

func (s *Store) emailHolder(email string) int64 {
	for id, u := range s.data.users {
		if u.email != nil && *u.email == email {
			return id
		}
	}
	return 0
}

func (s *Store) externalIDHolder(ext int64) int64 {
	for id, u := range s.data.users {
		if u.externalID != nil && *u.externalID == ext {
			return id
		}
	}
	return 0
}

type reservationRepo struct{ s *Store }

func (r reservationRepo) FindByID(_ context.Context, id int64) (*reservation.Reservation, error) {
	row, ok := r.s.data.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return row.toDomain(), nil
}

func (r reservationRepo) CountOverlapping(_ context.Context, resourceID int64, slot reservation.TimeSlot, excludeID int64) (int64, error) {
	if err := r.s.fail("reservations.CountOverlapping"); err != nil {
		return 0, err
	}
	return int64(len(r.s.conflicting(resourceID, slot.Start(), slot.End(), excludeID))), nil
}

func (r reservationRepo) CountActiveByUser(_ context.Context, userID int64, now time.Time) (int64, error) {
	var n int64
	for _, row := range r.s.data.reservations {
		if row.userID == userID && row.end.After(now) {
			n++
		}
	}
	return n, nil
}

func (r reservationRepo) TokenExists(_ context.Context, token string) (bool, error) {
	if err := r.s.fail("reservations.TokenExists"); err != nil {
		return false, err
	}
	return r.s.tokenHolder(token) != 0, nil
}

func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation) (int64, error) {
	if err := r.s.fail("reservations.Create"); err != nil {
		return 0, err
	}
	slot := res.TimeSlot()
	if err := r.s.checkConstraints(0, res.ResourceID(), slot, res.Token()); err != nil {
		return 0, err
	}
	r.s.data.nextReservationID++
	id := r.s.data.nextReservationID
	now := r.s.now()
	r.s.data.reservations[id] = reservationRow{
		id: id, resourceID: res.ResourceID(), userID: res.UserID(),
		start: slot.Start(), end: slot.End(), token: res.Token(),
		createdAt: now, updatedAt: now,
	}
	return id, nil
}

func (r reservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	if err := r.s.fail("reservations.Update"); err != nil {
		return err
	}
	row, ok := r.s.data.reservations[res.ID()]
	if !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	slot := res.TimeSlot()
	if err := r.s.checkConstraints(res.ID(), res.ResourceID(), slot, res.Token()); err != nil {
		return err
	}
	row.resourceID, row.start, row.end = res.ResourceID(), slot.Start(), slot.End()
	row.token, row.updatedAt = res.Token(), r.s.now()
	r.s.data.reservations[res.ID()] = row
	return nil
}

func (r reservationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.data.reservations[id]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	delete(r.s.data.reservations, id)
	return nil
}

func (s *Store) conflicting(resourceID int64, start, end time.Time, excludeID int64) []int64 {
	var ids []int64
	for id, row := range s.data.reservations {
		if id == excludeID || row.resourceID != resourceID {
			continue
		}
		if overlaps(row.start, row.end, start, end) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Store) tokenHolder(token string) int64 {
	for id, row := range s.data.reservations {
		if row.token == token {
			return id
		}
	}
	return 0
}

func (s *Store) checkConstraints(selfID, resourceID int64, slot reservation.TimeSlot, token string) error {
	if !slot.Start().Before(slot.End()) {
		return infra.WrapRepoErr("reservation window", nil, infra.KindCheckViolation)
	}
	if _, ok := s.data.resources[resourceID]; !ok {
		return infra.WrapRepoErr("reservation resource", nil, infra.KindForeignKeyViolated)
	}
	if len(s.conflicting(resourceID, slot.Start(), slot.End(), selfID)) > 0 {
		return infra.WrapRepoErr("reservation overlap", nil, infra.KindExclusionViolation)
	}
	if holder := s.tokenHolder(token); holder != 0 && holder != selfID {
		return infra.WrapRepoErr("reservation token", nil, infra.KindUniqueViolation)
	}
	return nil
}

// ReservationViews serves the read side from the same data.

type ReservationViews struct{ s *Store }

func (s *Store) ReservationViews() *ReservationViews { return &ReservationViews{s: s} }

func (v *ReservationViews) FindByID(_ context.Context, id int64) (*queries.ReservationView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	row, ok := v.s.data.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return v.s.view(row), nil
}

func (v *ReservationViews) FindByToken(_ context.Context, token string) (*queries.ReservationView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	id := v.s.tokenHolder(token)
	if id == 0 {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return v.s.view(v.s.data.reservations[id]), nil
}

func (v *ReservationViews) List(_ context.Context, f queries.ReservationFilter) ([]*queries.ReservationView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	out := []*queries.ReservationView{}
	for _, row := range v.s.data.reservations {
		view := v.s.view(row)
		switch {
		case f.ID != nil && view.ID != *f.ID:
		case f.Email != "" && (view.UserEmail == nil || *view.UserEmail != strings.ToLower(f.Email)):
		case f.ExternalID != nil && (view.UserExternalID == nil || *view.UserExternalID != *f.ExternalID):
		case f.ResourceName != "" && view.ResourceName != f.ResourceName:
		default:
			out = append(out, view)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].StartAt.Before(out[j].StartAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) view(row reservationRow) *queries.ReservationView {
	u := s.data.users[row.userID]
	return &queries.ReservationView{
		ID:             row.id,
		ResourceID:     row.resourceID,
		ResourceName:   s.data.resources[row.resourceID].name,
		UserID:         row.userID,
		UserEmail:      u.email,
		UserExternalID: u.externalID,
		StartAt:        row.start,
		EndAt:          row.end,
		Token:          row.token,
		CreatedAt:      row.createdAt,
		UpdatedAt:      row.updatedAt,
	}
}

type ResourceViews struct{ s *Store }

func (s *Store) ResourceViews() *ResourceViews { return &ResourceViews{s: s} }

func (v *ResourceViews) List(_ context.Context, f queries.ResourceFilter) ([]*queries.ResourceView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	typeNames := make(map[int64]string, len(v.s.data.types))
	for name, id := range v.s.data.types {
		typeNames[id] = name
	}
	out := []*queries.ResourceView{}
	for _, row := range v.s.data.resources {
		typeName := typeNames[row.typeID]
		switch {
		case f.ID != nil && row.id != *f.ID:
		case f.Type != "" && typeName != strings.ToLower(f.Type):
		case f.Name != "" && row.name != f.Name:
		case f.Available != nil && row.available != *f.Available:
		default:
			out = append(out, &queries.ResourceView{
				ID: row.id, Name: row.name, Model: row.model, Path: row.path,
				Type: typeName, Available: row.available,
				CreatedAt: row.createdAt, UpdatedAt: row.updatedAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type UserViews struct{ s *Store }

func (s *Store) UserViews() *UserViews { return &UserViews{s: s} }

func (v *UserViews) FindByID(_ context.Context, id int64) (*queries.UserView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	u, ok := v.s.data.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return userView(u), nil
}

func (v *UserViews) List(_ context.Context, f queries.UserFilter) ([]*queries.UserView, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	out := []*queries.UserView{}
	for _, u := range v.s.data.users {
		switch {
		case f.ID != nil && u.id != *f.ID:
		case f.Email != "" && (u.email == nil || *u.email != strings.ToLower(f.Email)):
		case f.ExternalID != nil && (u.externalID == nil || *u.externalID != *f.ExternalID):
		default:
			out = append(out, userView(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func userView(u userRow) *queries.UserView {
	return &queries.UserView{ID: u.id, Email: u.email, ExternalID: u.externalID, CreatedAt: u.createdAt}
}
