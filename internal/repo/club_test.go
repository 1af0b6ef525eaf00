package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/circlehub/internal/domain"
	"github.com/pkordes/circlehub/internal/repo"
	"github.com/pkordes/circlehub/testutil"
)

// newTestRepo returns a ClubStore backed by a transaction that is rolled back
// when the test finishes. Requires TEST_DATABASE_URL.
func newTestRepo(t *testing.T) repo.ClubStore {
	t.Helper()
	r := repo.NewClubRepo(testutil.NewTx(t))
	// Start from an empty table regardless of what other packages left behind.
	_, err := r.DeleteExcept(context.Background(), nil)
	require.NoError(t, err)
	return r
}

// clubFixture returns a fully populated club. Callers override fields as needed.
func clubFixture(key string) domain.Club {
	return domain.Club{
		Key:          key,
		Name:         "テニスクラブ",
		Verified:     true,
		ProfileImage: "/images/tennis.jpg",
		Affiliation:  "スポーツ",
		Tags:         []string{"スポーツ", "屋外活動"},
		Activity: domain.ActivityDetails{
			Summary:   "競技志向のテニスクラブです。",
			Frequency: "週3回",
			Record:    "新人戦出場\n県大会出場",
		},
		Members: domain.MemberComposition{
			TotalMembers: "12名",
			GradeLevels:  map[string]string{"2nd": "5名"},
		},
		Links:             domain.ExternalLinks{Instagram: "https://instagram.com/tennisclub"},
		Recruitment:       domain.RecruitmentInfo{WelcomeSchedule: "4月の毎週土曜"},
		LastUpdate:        "2025年3月8日",
		SecretDescription: "racket",
	}
}

func TestClubRepo_Upsert_Insert(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	input := clubFixture("tennis-club")
	got, err := r.Upsert(ctx, 0, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be assigned")
	input.ID = got.ID
	assert.Equal(t, input, got)
}

func TestClubRepo_Upsert_UpdateKeepsID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first, err := r.Upsert(ctx, 0, clubFixture("tennis-club"))
	require.NoError(t, err)

	changed := clubFixture("tennis-club")
	changed.Name = "硬式テニス部"
	changed.Tags = nil
	second, err := r.Upsert(ctx, 3, changed)

	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "硬式テニス部", second.Name)
	assert.Nil(t, second.Tags)
}

func TestClubRepo_List_PositionOrder(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.Upsert(ctx, 2, clubFixture("c"))
	require.NoError(t, err)
	_, err = r.Upsert(ctx, 0, clubFixture("a"))
	require.NoError(t, err)
	_, err = r.Upsert(ctx, 1, clubFixture("b"))
	require.NoError(t, err)

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, "b", got[1].Key)
	assert.Equal(t, "c", got[2].Key)
	assert.Equal(t, "4月の毎週土曜", got[0].Recruitment.WelcomeSchedule)
}

func TestClubRepo_List_Empty(t *testing.T) {
	r := newTestRepo(t)

	got, err := r.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClubRepo_DeleteExcept(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	for i, k := range []string{"a", "b", "c"} {
		_, err := r.Upsert(ctx, i, clubFixture(k))
		require.NoError(t, err)
	}

	n, err := r.DeleteExcept(ctx, []string{"b"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Key)
}
