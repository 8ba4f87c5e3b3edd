package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/saandeep/portfolio-api/internal/database/testutil"
)

func TestStatsOverviewCounts(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	ctx := context.Background()

	projects, err := NewProjectService(db, nil, nil, nil)
	require.NoError(t, err)
	blog, err := NewBlogService(db, nil, nil, nil, nil)
	require.NoError(t, err)
	contact, err := NewContactService(db, nil, nil, nil)
	require.NoError(t, err)
	testimonials, err := NewTestimonialService(db, nil, nil)
	require.NoError(t, err)
	achievements, err := NewAchievementService(db, nil)
	require.NoError(t, err)
	skills, err := NewSkillService(db, nil)
	require.NoError(t, err)
	stats, err := NewStatsService(db, nil)
	require.NoError(t, err)

	started := time.Now().AddDate(-3, -1, 0)
	_, err = projects.Create(ctx, CreateProjectInput{Title: "p", Description: "d", StartDate: &started})
	require.NoError(t, err)
	_, err = blog.Create(ctx, CreatePostInput{Title: "live", Content: "c", Publish: true})
	require.NoError(t, err)
	_, err = blog.Create(ctx, CreatePostInput{Title: "draft", Content: "c"})
	require.NoError(t, err)
	_, err = contact.Submit(ctx, ContactInput{Name: "A", Email: "a@b.c", Message: "hi"}, "")
	require.NoError(t, err)
	pending, err := testimonials.Submit(ctx, TestimonialInput{Name: "B", Message: "good", Rating: 5})
	require.NoError(t, err)
	_, err = testimonials.Approve(ctx, pending.ID)
	require.NoError(t, err)

	_, err = achievements.Create(ctx, AchievementInput{Title: "DevFest", Type: "hackathon"})
	require.NoError(t, err)
	_, err = achievements.Create(ctx, AchievementInput{Title: "CKA", Type: "certification"})
	require.NoError(t, err)
	_, err = skills.Create(ctx, SkillInput{Name: "Go", Level: 90})
	require.NoError(t, err)
	_, err = skills.Create(ctx, SkillInput{Name: "SQL", Level: 70})
	require.NoError(t, err)

	overview, err := stats.Overview(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), overview.Projects)
	require.Equal(t, int64(1), overview.PublishedPosts)
	require.Equal(t, int64(1), overview.DraftPosts)
	require.Equal(t, int64(1), overview.ApprovedTestimonials)
	require.Zero(t, overview.PendingTestimonials)
	require.Equal(t, int64(1), overview.UnreadMessages)
	require.Equal(t, int64(1), overview.Hackathons)
	require.Equal(t, int64(1), overview.Certifications)
	require.Equal(t, 3, overview.ExperienceYears)
	require.Len(t, overview.TopSkills, 2)
	require.Equal(t, "Go", overview.TopSkills[0].Name)
	require.Len(t, overview.RecentAchievements, 2)
}

func TestTestimonialApprovalFlow(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewTestimonialService(db, nil, nil)
	require.NoError(t, err)
	ctx := context.Background()

	submitted, err := svc.Submit(ctx, TestimonialInput{Name: "Ada", Message: "great", Rating: 5})
	require.NoError(t, err)
	require.False(t, submitted.Approved)

	visible, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	require.Empty(t, visible)

	_, err = svc.Approve(ctx, submitted.ID)
	require.NoError(t, err)

	visible, err = svc.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
}

func TestTestimonialRatingBounds(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewTestimonialService(db, nil, nil)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), TestimonialInput{Name: "A", Message: "m", Rating: 6})
	require.Error(t, err)
}

func TestSkillListOrdering(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewSkillService(db, nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Create(ctx, SkillInput{Name: "SQL", Order: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, SkillInput{Name: "Go", Order: 1})
	require.NoError(t, err)

	skills, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, skills, 2)
	require.Equal(t, "Go", skills[0].Name)
}
