package users

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store used to exercise the service without
// a database. Rows keep insertion order for List.
type fakeStore struct {
	rows []User

	listErr   error
	countErr  error
	getErr    error
	insertErr error
	updateErr error
	deleteErr error
}

func (f *fakeStore) List(ctx context.Context) ([]User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]User, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeStore) Count(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.rows), nil
}

func (f *fakeStore) Get(ctx context.Context, id string) (*User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			u := f.rows[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Insert(ctx context.Context, user *User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows = append(f.rows, *user)
	return nil
}

func (f *fakeStore) UpdateUsername(ctx context.Context, id, username string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Username = username
		}
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func mustCreate(t *testing.T, s *Service, username, email, password string) *User {
	t.Helper()
	u, err := s.Create(context.Background(), username, email, password)
	require.NoError(t, err)
	return u
}

func TestCreate_HashesPassword(t *testing.T) {
	store := &fakeStore{}
	s := NewService(store)

	u := mustCreate(t, s, "alice", "alice@example.com", "secret1")

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "secret1", u.Password)

	got, err := s.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", got.Password)
}

func TestCreate_UniqueIDs(t *testing.T) {
	s := NewService(&fakeStore{})

	u1 := mustCreate(t, s, "alice", "alice@example.com", "secret1")
	u2 := mustCreate(t, s, "alice", "alice@example.com", "secret1")

	assert.NotEqual(t, u1.ID, u2.ID)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name                      string
		username, email, password string
	}{
		{"empty username", "", "a@b.com", "secret1"},
		{"empty email", "alice", "", "secret1"},
		{"empty password", "alice", "a@b.com", ""},
		{"whitespace only", "   ", "a@b.com", "secret1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			s := NewService(store)

			_, err := s.Create(context.Background(), tt.username, tt.email, tt.password)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "All fields are required", verr.Reason)
			assert.Empty(t, store.rows, "no row must be inserted on validation failure")
		})
	}
}

func TestCreate_NoUniquenessCheck(t *testing.T) {
	s := NewService(&fakeStore{})

	mustCreate(t, s, "alice", "alice@example.com", "secret1")
	// a duplicate insert is allowed at this layer
	mustCreate(t, s, "alice", "alice@example.com", "secret1")

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGet_NotFound(t *testing.T) {
	s := NewService(&fakeStore{})

	_, err := s.Get(context.Background(), "nonexistent-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRename_Success(t *testing.T) {
	store := &fakeStore{}
	s := NewService(store)
	u := mustCreate(t, s, "alice", "alice@example.com", "secret1")

	require.NoError(t, s.Rename(context.Background(), u.ID, "secret1", "alice2"))

	got, err := s.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", got.Username)
}

func TestRename_WrongPassword(t *testing.T) {
	store := &fakeStore{}
	s := NewService(store)
	u := mustCreate(t, s, "alice", "alice@example.com", "secret1")

	err := s.Rename(context.Background(), u.ID, "wrong", "x")

	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Incorrect password", aerr.Reason)

	got, gerr := s.Get(context.Background(), u.ID)
	require.NoError(t, gerr)
	assert.Equal(t, "alice", got.Username, "failed rename must not change the row")
}

func TestRename_NotFound(t *testing.T) {
	s := NewService(&fakeStore{})

	err := s.Rename(context.Background(), "nonexistent-id", "secret1", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRename_NoValidationOnNewName(t *testing.T) {
	store := &fakeStore{}
	s := NewService(store)
	u := mustCreate(t, s, "alice", "alice@example.com", "secret1")

	// empty new usernames pass through unchecked
	require.NoError(t, s.Rename(context.Background(), u.ID, "secret1", ""))

	got, err := s.Get(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "", got.Username)
}

func TestDelete_Success(t *testing.T) {
	store := &fakeStore{}
	s := NewService(store)
	u := mustCreate(t, s, "alice", "alice@example.com", "secret1")

	require.NoError(t, s.Delete(context.Background(), u.ID, "secret1", "alice@example.com"))

	_, err := s.Get(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_WrongPassword(t *testing.T) {
	store := &fakeStore{}
	s := NewService(store)
	u := mustCreate(t, s, "alice", "alice@example.com", "secret1")

	err := s.Delete(context.Background(), u.ID, "wrong", "alice@example.com")

	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Incorrect password", aerr.Reason)

	_, gerr := s.Get(context.Background(), u.ID)
	assert.NoError(t, gerr, "user must still exist after failed delete")
}

func TestDelete_WrongEmail(t *testing.T) {
	store := &fakeStore{}
	s := NewService(store)
	u := mustCreate(t, s, "alice", "alice@example.com", "secret1")

	err := s.Delete(context.Background(), u.ID, "secret1", "wrong@example.com")

	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Incorrect email", aerr.Reason)

	_, gerr := s.Get(context.Background(), u.ID)
	assert.NoError(t, gerr)
}

func TestDelete_EmailCompareIsCaseSensitive(t *testing.T) {
	store := &fakeStore{}
	s := NewService(store)
	u := mustCreate(t, s, "alice", "alice@example.com", "secret1")

	err := s.Delete(context.Background(), u.ID, "secret1", "Alice@Example.com")

	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Incorrect email", aerr.Reason)
}

func TestDelete_PasswordCheckedBeforeEmail(t *testing.T) {
	store := &fakeStore{}
	s := NewService(store)
	u := mustCreate(t, s, "alice", "alice@example.com", "secret1")

	// both credentials wrong: the password error wins
	err := s.Delete(context.Background(), u.ID, "wrong", "wrong@example.com")

	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "Incorrect password", aerr.Reason)
}

func TestDelete_SecondCallNotFound(t *testing.T) {
	store := &fakeStore{}
	s := NewService(store)
	u := mustCreate(t, s, "alice", "alice@example.com", "secret1")

	require.NoError(t, s.Delete(context.Background(), u.ID, "secret1", "alice@example.com"))

	err := s.Delete(context.Background(), u.ID, "secret1", "alice@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreErrorsPropagate(t *testing.T) {
	boom := errors.New("db down")
	s := NewService(&fakeStore{listErr: boom, countErr: boom, getErr: boom})

	_, err := s.List(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = s.Count(context.Background())
	assert.ErrorIs(t, err, boom)

	err = s.Rename(context.Background(), "id", "pw", "x")
	assert.ErrorIs(t, err, boom)

	err = s.Delete(context.Background(), "id", "pw", "a@b.com")
	assert.ErrorIs(t, err, boom)
}

// Full walkthrough: create, rename with the right password, reject a
// delete with the wrong password, then delete with both credentials.
func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewService(&fakeStore{})

	u := mustCreate(t, s, "alice", "alice@example.com", "secret1")

	require.NoError(t, s.Rename(ctx, u.ID, "secret1", "alice2"))
	got, err := s.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", got.Username)

	var aerr *AuthError
	require.ErrorAs(t, s.Delete(ctx, u.ID, "wrong", "alice@example.com"), &aerr)

	require.NoError(t, s.Delete(ctx, u.ID, "secret1", "alice@example.com"))

	_, err = s.Get(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
