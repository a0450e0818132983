package installer

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/danareia/appman/internal/pkgmgr"
)

// mockClient implements pkgmgr.Client for interaction tests.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) Name() string {
	return m.Called().String(0)
}

func (m *mockClient) IsAvailable(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *mockClient) IsPackageInstalled(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockClient) Install(ctx context.Context, id string, opts pkgmgr.Options) error {
	return m.Called(ctx, id, opts).Error(0)
}

func (m *mockClient) PackageVersion(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *mockClient) InstallHint() string {
	return m.Called().String(0)
}
