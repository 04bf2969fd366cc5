package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/authgrid/auth-service/internal/core/domain"
)

type stubUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User // keyed by ID
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) CreateUser(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		r.seq++
		copy.ID = fmt.Sprintf("user-%d", r.seq)
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindUserByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ListUsers(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r *stubUserRepo) UpdateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

type stubRoleRepo struct {
	mu          sync.Mutex
	seq         int
	roles       map[string]*domain.Role       // keyed by ID
	permissions map[string]*domain.Permission // keyed by ID
	grants      map[string]string             // roleID+"/"+permID -> value
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{
		roles:       make(map[string]*domain.Role),
		permissions: make(map[string]*domain.Permission),
		grants:      make(map[string]string),
	}
}

func (r *stubRoleRepo) nextID(prefix string) string {
	r.seq++
	return fmt.Sprintf("%s-%d", prefix, r.seq)
}

func (r *stubRoleRepo) CreateRole(_ context.Context, role *domain.Role) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.roles {
		if existing.Name == role.Name {
			return nil, domain.ErrRoleExists
		}
	}
	clone := *role
	if clone.ID == "" {
		clone.ID = r.nextID("role")
	}
	r.roles[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubRoleRepo) FindRoleByID(_ context.Context, id string) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role, ok := r.roles[id]; ok {
		clone := *role
		return &clone, nil
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) FindRoleByName(_ context.Context, name string) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.roles {
		if role.Name == name {
			clone := *role
			return &clone, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) ListRoles(_ context.Context) ([]domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubRoleRepo) RenameRole(_ context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[id]
	if !ok {
		return domain.ErrRoleNotFound
	}
	role.Name = name
	return nil
}

func (r *stubRoleRepo) UpdateRole(_ context.Context, id, name string, grants []domain.GrantInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.roles[id]
	if !ok {
		return domain.ErrRoleNotFound
	}
	// Validate the whole batch before touching anything, so a bad
	// grant leaves the rename unapplied as well.
	for _, g := range grants {
		if _, ok := r.permissions[g.PermissionID]; !ok {
			return domain.ErrPermissionNotFound
		}
	}
	if name != "" {
		role.Name = name
	}
	for _, g := range grants {
		value := g.Value
		if value == "" {
			value = domain.GrantTrue
		}
		r.grants[id+"/"+g.PermissionID] = value
	}
	return nil
}

func (r *stubRoleRepo) DeleteRole(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.roles[id]; !ok {
		return domain.ErrRoleNotFound
	}
	delete(r.roles, id)
	for key := range r.grants {
		if len(key) > len(id) && key[:len(id)] == id && key[len(id)] == '/' {
			delete(r.grants, key)
		}
	}
	return nil
}

func (r *stubRoleRepo) FindPermissionByID(_ context.Context, id string) (*domain.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.permissions[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrPermissionNotFound
}

func (r *stubRoleRepo) FindPermissionByName(_ context.Context, name string) (*domain.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.permissions {
		if p.Name == name {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPermissionNotFound
}

func (r *stubRoleRepo) ListPermissions(_ context.Context, ids []string) ([]domain.Permission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Permission, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.permissions[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubRoleRepo) SetGrants(_ context.Context, roleID string, grants []domain.GrantInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range grants {
		if _, ok := r.permissions[g.PermissionID]; !ok {
			return domain.ErrPermissionNotFound
		}
	}
	for _, g := range grants {
		value := g.Value
		if value == "" {
			value = domain.GrantTrue
		}
		r.grants[roleID+"/"+g.PermissionID] = value
	}
	return nil
}

func (r *stubRoleRepo) ListGrants(_ context.Context, roleID string) ([]domain.PermissionGrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.PermissionGrant
	prefix := roleID + "/"
	for key, value := range r.grants {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			out = append(out, domain.PermissionGrant{
				RoleID:       roleID,
				PermissionID: key[len(prefix):],
				Value:        value,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PermissionID < out[j].PermissionID })
	return out, nil
}

func (r *stubRoleRepo) FindGrant(_ context.Context, roleID, permissionID string) (*domain.PermissionGrant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.grants[roleID+"/"+permissionID]
	if !ok {
		return nil, nil
	}
	return &domain.PermissionGrant{RoleID: roleID, PermissionID: permissionID, Value: value}, nil
}

func (r *stubRoleRepo) EnsurePermission(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.permissions {
		if p.Name == name {
			return false, nil
		}
	}
	id := r.nextID("perm")
	r.permissions[id] = &domain.Permission{ID: id, Name: name, CreatedAt: time.Now().UTC()}
	return true, nil
}

func (r *stubRoleRepo) EnsureRole(_ context.Context, name string) (*domain.Role, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.roles {
		if role.Name == name {
			clone := *role
			return &clone, false, nil
		}
	}
	id := r.nextID("role")
	role := &domain.Role{ID: id, Name: name, CreatedAt: time.Now().UTC()}
	r.roles[id] = role
	clone := *role
	return &clone, true, nil
}

func (r *stubRoleRepo) UpsertGrant(_ context.Context, roleID, permissionID, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.grants[roleID+"/"+permissionID] = value
	return nil
}

// mustSeedRole registers a role plus named permissions with the given
// grant values so tests can build graphs directly.
func (r *stubRoleRepo) mustSeedRole(name string, grants map[string]string) *domain.Role {
	role, _, _ := r.EnsureRole(context.Background(), name)
	for permName, value := range grants {
		_, _ = r.EnsurePermission(context.Background(), permName)
		perm, _ := r.FindPermissionByName(context.Background(), permName)
		_ = r.UpsertGrant(context.Background(), role.ID, perm.ID, value)
	}
	return role
}

type stubHistoryRepo struct {
	mu      sync.Mutex
	entries []domain.HistoryEntry
	failing bool
}

func newStubHistoryRepo() *stubHistoryRepo {
	return &stubHistoryRepo{}
}

func (r *stubHistoryRepo) Append(_ context.Context, userID, activity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return fmt.Errorf("history store down")
	}
	r.entries = append(r.entries, domain.HistoryEntry{
		ID:        fmt.Sprintf("entry-%d", len(r.entries)+1),
		UserID:    userID,
		Activity:  activity,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (r *stubHistoryRepo) List(_ context.Context, userID string, page, perPage int64) ([]domain.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []domain.HistoryEntry
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].UserID == userID {
			matched = append(matched, r.entries[i])
		}
	}
	start := (page - 1) * perPage
	if start >= int64(len(matched)) {
		return nil, nil
	}
	end := start + perPage
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}
	return matched[start:end], nil
}

type memDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func newMemDenylist() *memDenylist {
	return &memDenylist{revoked: make(map[string]time.Time), now: time.Now}
}

func (d *memDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = d.now().Add(ttl)
	return nil
}

func (d *memDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	expiry, ok := d.revoked[jti]
	return ok && d.now().Before(expiry), nil
}
