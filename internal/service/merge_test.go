package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"story_aggregator/internal/domain"
	"story_aggregator/internal/service/mocks"
)

func (s *StoryServiceTestSuite) TestMerge_SumsSourcesIntoDestination() {
	ctx := context.Background()
	destination := s.story("d", 2)
	source1 := s.story("s1", 3)
	source1.CommentCounts.Action = domain.ActionCounts{"FLAG": 2}
	source2 := s.story("s2", 1)
	source2.CommentCounts.Action = domain.ActionCounts{"FLAG": 1, "DONT_AGREE": 4}
	merged := s.story("d", 4)

	s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"d", "s1", "s2"}, false).Return(
		[]domain.Story{destination, source1, source2}, nil,
	)
	s.expectTransaction()
	gomock.InOrder(
		s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"s1", "s2"}, true).Return(
			[]domain.Story{source1, source2}, nil,
		),
		s.comments.EXPECT().ReassignStory(ctx, s.tenant.ID, []string{"s1", "s2"}, "d").Return(int64(4), nil),
		s.actions.EXPECT().ReassignStory(ctx, s.tenant.ID, []string{"s1", "s2"}, "d").Return(int64(7), nil),
		s.stories.EXPECT().UpdateCounts(ctx, s.tenant.ID, "d", gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _ string, counts domain.CommentCounts) (*domain.Story, error) {
				s.Equal(int64(4), counts.Status.Approved)
				s.Equal(domain.ActionCounts{"FLAG": 3, "DONT_AGREE": 4}, counts.Action)
				return &merged, nil
			},
		),
		s.stories.EXPECT().RemoveMany(ctx, s.tenant.ID, []string{"s1", "s2"}).Return(int64(2), nil),
	)
	s.metrics.EXPECT().MergeCompleted("merged", int64(4))

	result, err := s.service.Merge(ctx, s.tenant, "d", []string{"s1", "s2"})

	s.NoError(err)
	s.Equal("d", result.Story.ID)
	s.Equal(int64(4), result.Story.CommentCounts.Status.Approved)
	s.Equal(int64(4), result.CommentsReassigned)
	s.Equal(int64(7), result.ActionsReassigned)
	s.Equal(int64(2), result.StoriesRemoved)
}

func (s *StoryServiceTestSuite) TestMerge_NoSources() {
	s.metrics.EXPECT().MergeCompleted("rejected", int64(0))

	_, err := s.service.Merge(context.Background(), s.tenant, "d", nil)

	s.assertMergeRejected(err, domain.MergeReasonNoSources, nil)
}

func (s *StoryServiceTestSuite) TestMerge_DestinationAmongSources() {
	s.metrics.EXPECT().MergeCompleted("rejected", int64(0))

	_, err := s.service.Merge(context.Background(), s.tenant, "d", []string{"s1", "d"})

	s.assertMergeRejected(err, domain.MergeReasonDuplicateIDs, []string{"d"})
}

func (s *StoryServiceTestSuite) TestMerge_DuplicateSources() {
	s.metrics.EXPECT().MergeCompleted("rejected", int64(0))

	_, err := s.service.Merge(context.Background(), s.tenant, "d", []string{"s1", "s1"})

	s.assertMergeRejected(err, domain.MergeReasonDuplicateIDs, []string{"s1"})
}

func (s *StoryServiceTestSuite) TestMerge_MissingStory() {
	ctx := context.Background()

	s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"d", "s1", "s2"}, false).Return(
		[]domain.Story{s.story("d", 0), s.story("s2", 0)}, nil,
	)
	s.metrics.EXPECT().MergeCompleted("rejected", int64(0))

	_, err := s.service.Merge(ctx, s.tenant, "d", []string{"s1", "s2"})

	s.assertMergeRejected(err, domain.MergeReasonMissingStories, []string{"s1"})
}

func (s *StoryServiceTestSuite) TestMerge_CrossSiteTouchesNothing() {
	ctx := context.Background()
	foreign := s.story("s1", 5)
	foreign.SiteID = "site-2"

	s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"d", "s1"}, false).Return(
		[]domain.Story{s.story("d", 1), foreign}, nil,
	)
	s.metrics.EXPECT().MergeCompleted("rejected", int64(0))

	_, err := s.service.Merge(ctx, s.tenant, "d", []string{"s1"})

	s.assertMergeRejected(err, domain.MergeReasonSiteMismatch, []string{"s1"})
}

func (s *StoryServiceTestSuite) TestMerge_RejectsNonCommentsMode() {
	ctx := context.Background()
	qa := domain.StoryModeQA
	source := s.story("s1", 1)
	source.Settings.Mode = &qa

	s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"d", "s1"}, false).Return(
		[]domain.Story{s.story("d", 1), source}, nil,
	)
	s.metrics.EXPECT().MergeCompleted("rejected", int64(0))

	_, err := s.service.Merge(ctx, s.tenant, "d", []string{"s1"})

	s.assertMergeRejected(err, domain.MergeReasonNotCommentsMode, []string{"s1"})
}

func (s *StoryServiceTestSuite) TestMerge_TenantDefaultQAMode() {
	ctx := context.Background()
	s.tenant.FeatureFlags = []domain.FeatureFlag{domain.FeatureFlagDefaultQAStoryMode}

	s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"d", "s1"}, false).Return(
		[]domain.Story{s.story("d", 1), s.story("s1", 1)}, nil,
	)
	s.metrics.EXPECT().MergeCompleted("rejected", int64(0))

	_, err := s.service.Merge(ctx, s.tenant, "d", []string{"s1"})

	s.assertMergeRejected(err, domain.MergeReasonNotCommentsMode, []string{"d", "s1"})
}

func (s *StoryServiceTestSuite) TestMerge_SourceRemovedConcurrently() {
	ctx := context.Background()

	s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"d", "s1"}, false).Return(
		[]domain.Story{s.story("d", 1), s.story("s1", 1)}, nil,
	)
	s.expectTransaction()
	s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"s1"}, true).Return(nil, nil)
	s.metrics.EXPECT().MergeCompleted("rejected", int64(0))

	_, err := s.service.Merge(ctx, s.tenant, "d", []string{"s1"})

	s.assertMergeRejected(err, domain.MergeReasonMissingStories, []string{"s1"})
}

func (s *StoryServiceTestSuite) TestMerge_ReassignFailure() {
	ctx := context.Background()
	source := s.story("s1", 1)

	s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"d", "s1"}, false).Return(
		[]domain.Story{s.story("d", 1), source}, nil,
	)
	s.expectTransaction()
	s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"s1"}, true).Return([]domain.Story{source}, nil)
	s.comments.EXPECT().ReassignStory(ctx, s.tenant.ID, []string{"s1"}, "d").Return(int64(0), errors.New("connection reset"))
	s.metrics.EXPECT().MergeCompleted("failed", int64(0))

	_, err := s.service.Merge(ctx, s.tenant, "d", []string{"s1"})

	s.Error(err)
	s.NotErrorIs(err, domain.ErrMergeValidationFailed)
}

func (s *StoryServiceTestSuite) TestMerge_HoldsSiteLock() {
	ctx := context.Background()
	locker := mocks.NewMockLocker(s.ctrl)
	service := s.newService(locker)
	source := s.story("s1", 1)
	merged := s.story("d", 1)
	released := false

	s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"d", "s1"}, false).Return(
		[]domain.Story{s.story("d", 0), source}, nil,
	)
	locker.EXPECT().Acquire(ctx, "merge:tenant-1:site-1", service.opts.LockTTL).Return(
		func(context.Context) error {
			released = true
			return nil
		}, nil,
	)
	s.expectTransaction()
	s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"s1"}, true).Return([]domain.Story{source}, nil)
	s.comments.EXPECT().ReassignStory(ctx, s.tenant.ID, []string{"s1"}, "d").Return(int64(1), nil)
	s.actions.EXPECT().ReassignStory(ctx, s.tenant.ID, []string{"s1"}, "d").Return(int64(0), nil)
	s.stories.EXPECT().UpdateCounts(ctx, s.tenant.ID, "d", gomock.Any()).Return(&merged, nil)
	s.stories.EXPECT().RemoveMany(ctx, s.tenant.ID, []string{"s1"}).Return(int64(1), nil)
	s.metrics.EXPECT().MergeCompleted("merged", int64(1))

	_, err := service.Merge(ctx, s.tenant, "d", []string{"s1"})

	s.NoError(err)
	s.True(released)
}

func (s *StoryServiceTestSuite) TestMerge_LockHeld() {
	ctx := context.Background()
	locker := mocks.NewMockLocker(s.ctrl)
	service := s.newService(locker)
	lockErr := errors.New("lock held")

	s.stories.EXPECT().FindMany(ctx, s.tenant.ID, []string{"d", "s1"}, false).Return(
		[]domain.Story{s.story("d", 0), s.story("s1", 1)}, nil,
	)
	locker.EXPECT().Acquire(ctx, "merge:tenant-1:site-1", gomock.Any()).Return(nil, lockErr)
	s.metrics.EXPECT().MergeCompleted("failed", int64(0))

	_, err := service.Merge(ctx, s.tenant, "d", []string{"s1"})

	s.ErrorIs(err, lockErr)
}

func (s *StoryServiceTestSuite) assertMergeRejected(err error, reason domain.MergeValidationReason, ids []string) {
	s.Require().ErrorIs(err, domain.ErrMergeValidationFailed)

	var validationErr *domain.MergeValidationError
	s.Require().ErrorAs(err, &validationErr)
	s.Equal(reason, validationErr.Reason)
	s.Equal(ids, validationErr.StoryIDs)
}
