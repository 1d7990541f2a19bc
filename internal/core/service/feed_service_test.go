package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/seckatie/feedmarks/internal/core/db"
	"github.com/seckatie/feedmarks/internal/core/service"
	"github.com/seckatie/feedmarks/internal/core/service/mock"
	"github.com/seckatie/feedmarks/internal/opml"
)

func TestFeedService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockFeedRepository(ctrl)
	svc := service.NewFeedService(repo)

	gomock.InOrder(
		repo.EXPECT().FindFeedByURL(gomock.Any(), "http://x.com/rss").Return(db.Feed{}, db.ErrNotFound),
		repo.EXPECT().AddFeed(gomock.Any(), "A", "http://x.com/rss").
			Return(db.Feed{ID: 1, Name: "A", URL: "http://x.com/rss"}, nil),
	)

	f, err := svc.Create(context.Background(), "A", "http://x.com/rss")
	require.NoError(t, err)
	require.Equal(t, db.Feed{ID: 1, Name: "A", URL: "http://x.com/rss"}, f)
}

func TestFeedService_Create_ConflictSkipsInsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockFeedRepository(ctrl)
	svc := service.NewFeedService(repo)

	repo.EXPECT().
		FindFeedByURL(gomock.Any(), "http://x.com/rss").
		Return(db.Feed{ID: 1, Name: "A", URL: "http://x.com/rss"}, nil)
	repo.EXPECT().AddFeed(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Create(context.Background(), "B", "http://x.com/rss")
	require.ErrorIs(t, err, service.ErrConflict)
}

func TestFeedService_Create_StorageDuplicateIsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockFeedRepository(ctrl)
	svc := service.NewFeedService(repo)

	repo.EXPECT().FindFeedByURL(gomock.Any(), "http://x.com/rss").Return(db.Feed{}, db.ErrNotFound)
	repo.EXPECT().AddFeed(gomock.Any(), "A", "http://x.com/rss").Return(db.Feed{}, db.ErrDuplicate)

	_, err := svc.Create(context.Background(), "A", "http://x.com/rss")
	require.ErrorIs(t, err, service.ErrConflict)
}

func TestFeedService_Create_LookupError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockFeedRepository(ctrl)
	svc := service.NewFeedService(repo)

	repo.EXPECT().FindFeedByURL(gomock.Any(), gomock.Any()).Return(db.Feed{}, errors.New("locked"))

	_, err := svc.Create(context.Background(), "A", "http://x.com/rss")
	require.Error(t, err)
	require.NotErrorIs(t, err, service.ErrConflict)
	require.Contains(t, err.Error(), "locked")
}

func TestFeedService_Create_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockFeedRepository(ctrl)
	svc := service.NewFeedService(repo)

	_, err := svc.Create(context.Background(), "A", "")
	require.ErrorIs(t, err, service.ErrValidation)
}

func TestFeedService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockFeedRepository(ctrl)
	svc := service.NewFeedService(repo)

	repo.EXPECT().DeleteFeed(gomock.Any(), int64(5)).Return(db.ErrNotFound)

	require.ErrorIs(t, svc.Delete(context.Background(), 5), service.ErrNotFound)
}

func TestFeedService_ExportOPML(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockFeedRepository(ctrl)
	svc := service.NewFeedService(repo)

	repo.EXPECT().ListFeeds(gomock.Any(), 0).Return([]db.Feed{
		{ID: 1, Name: "Go Blog", URL: "https://go.dev/blog/feed.atom"},
		{ID: 2, Name: "Tom & Jerry", URL: "https://example.com/rss?a=1&b=2"},
	}, nil)

	out, err := svc.ExportOPML(context.Background())
	require.NoError(t, err)

	doc, err := opml.Parse(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, "2.0", doc.Version)

	feeds := doc.Feeds()
	require.Len(t, feeds, 2)
	require.Equal(t, "Go Blog", feeds[0].Text)
	require.Equal(t, "rss", feeds[0].Type)
	require.Equal(t, "https://go.dev/blog/feed.atom", feeds[0].XMLURL)
	require.Equal(t, "Tom & Jerry", feeds[1].Title)
	require.Equal(t, "https://example.com/rss?a=1&b=2", feeds[1].XMLURL)
}
