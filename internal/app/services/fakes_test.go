package services

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/collegepredictor/internal/app/models"
	"github.com/yigit/collegepredictor/internal/app/repositories"
	"github.com/yigit/collegepredictor/internal/db"
	"github.com/yigit/collegepredictor/internal/pkg/notifier"
)

type fakeOfferingStore struct {
	offerings  []models.Offering
	categories []string
	districts  []string
	branches   []string
	err        error

	calls   int
	lastArg repositories.EligibilityFilter
}

func (f *fakeOfferingStore) FindEligible(_ context.Context, filter repositories.EligibilityFilter) ([]models.Offering, error) {
	f.calls++
	f.lastArg = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.offerings, nil
}

func (f *fakeOfferingStore) ListCategories(context.Context) ([]string, error) {
	return f.categories, f.err
}

func (f *fakeOfferingStore) ListDistricts(context.Context) ([]string, error) {
	return f.districts, f.err
}

func (f *fakeOfferingStore) ListBranches(context.Context) ([]string, error) {
	return f.branches, f.err
}

type fakeLocationStore struct {
	locations   []models.CollegeLocation
	districts   []string
	codes       []string
	districtErr error
	codeErr     error

	// districtsDone, when set, makes ListCodes run after ListDistricts returned
	districtsDone chan struct{}
	codesCtxErr   error
}

func (f *fakeLocationStore) ListAll(context.Context) ([]models.CollegeLocation, error) {
	return f.locations, f.districtErr
}

func (f *fakeLocationStore) ListDistricts(context.Context) ([]string, error) {
	if f.districtsDone != nil {
		defer close(f.districtsDone)
	}
	return f.districts, f.districtErr
}

func (f *fakeLocationStore) ListCodes(ctx context.Context) ([]string, error) {
	if f.districtsDone != nil {
		<-f.districtsDone
	}
	f.codesCtxErr = ctx.Err()
	return f.codes, f.codeErr
}

type fakeUserStore struct {
	created []*models.User
	err     error
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if f.err != nil {
		return f.err
	}
	user.ID = int64(len(f.created) + 1)
	f.created = append(f.created, user)
	return nil
}

type fakeStorage struct {
	saved map[string][]byte
	err   error
}

func (f *fakeStorage) SaveBytes(subdir, name string, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	f.saved[subdir+"/"+name] = data
	return "http://test/uploads/" + subdir + "/" + name, nil
}

func (f *fakeStorage) DeleteFile(string) error { return nil }

func (f *fakeStorage) GetFullPath(string) string { return "" }

type fakeSender struct {
	channel string
	ref     string
	err     error

	mu   sync.Mutex
	sent []notifier.Message
}

func (f *fakeSender) Channel() string { return f.channel }

func (f *fakeSender) Send(_ context.Context, msg notifier.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return "", f.err
	}
	return f.ref, nil
}

// fakeTx runs fn with a nil transaction; writers below ignore it
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	f.calls++
	return fn(ctx, nil)
}

type fakeOfferingWriter struct {
	inserted  []models.Offering
	truncated bool
	err       error
}

func (f *fakeOfferingWriter) BulkInsert(_ context.Context, _ pgx.Tx, offerings []models.Offering) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.inserted = append(f.inserted, offerings...)
	return int64(len(offerings)), nil
}

func (f *fakeOfferingWriter) Truncate(context.Context, pgx.Tx) error {
	f.truncated = true
	return nil
}

type fakeLocationWriter struct {
	inserted  []models.CollegeLocation
	truncated bool
}

func (f *fakeLocationWriter) BulkInsert(_ context.Context, _ pgx.Tx, locations []models.CollegeLocation) (int64, error) {
	f.inserted = append(f.inserted, locations...)
	return int64(len(locations)), nil
}

func (f *fakeLocationWriter) Truncate(context.Context, pgx.Tx) error {
	f.truncated = true
	return nil
}

func float(v float64) *float64 { return &v }
