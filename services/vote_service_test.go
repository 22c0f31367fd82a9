package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"planpal-api/models"
)

const testPlanID = "plan-test"

func TestGetVoteWeightSumsMatchingVotes(t *testing.T) {
	vs := NewVoteService()

	vs.AddVote(testPlanID, "alice", models.CategoryVenues, "park", 1, false)
	vs.AddVote(testPlanID, "bob", models.CategoryVenues, "park", 2, false)
	vs.AddVote(testPlanID, "carol", models.CategoryVenues, "museum", 1, false)
	vs.AddVote(testPlanID, "alice", models.CategoryActivities, "park", 5, false) // other category, same item id

	assert.Equal(t, 3, vs.GetVoteWeight(testPlanID, models.CategoryVenues, "park"))
	assert.Equal(t, 1, vs.GetVoteWeight(testPlanID, models.CategoryVenues, "museum"))
	assert.Equal(t, 0, vs.GetVoteWeight(testPlanID, models.CategoryVenues, "beach"))
}

func TestAddVoteReplacesExistingVote(t *testing.T) {
	vs := NewVoteService()

	vs.AddVote(testPlanID, "alice", models.CategoryVenues, "park", 1, false)
	vs.AddVote(testPlanID, "alice", models.CategoryVenues, "park", 3, true)

	votes := vs.GetVotesForItem(testPlanID, models.CategoryVenues, "park")
	assert.Len(t, votes, 1, "re-voting must replace, not duplicate")
	assert.Equal(t, 3, votes[0].Weight)
	assert.True(t, votes[0].IsRequired)
	assert.Equal(t, 3, vs.GetVoteWeight(testPlanID, models.CategoryVenues, "park"))
}

func TestGetVotesForItemPreservesInsertionOrder(t *testing.T) {
	vs := NewVoteService()

	vs.AddVote(testPlanID, "alice", models.CategoryDates, "d1", 1, false)
	vs.AddVote(testPlanID, "bob", models.CategoryDates, "d1", 1, false)
	vs.AddVote(testPlanID, "carol", models.CategoryDates, "d1", 1, false)

	votes := vs.GetVotesForItem(testPlanID, models.CategoryDates, "d1")
	assert.Equal(t, []string{"alice", "bob", "carol"}, []string{votes[0].UserID, votes[1].UserID, votes[2].UserID})
}

func TestTopChoiceStableTieBreak(t *testing.T) {
	vs := NewVoteService()

	// A and B both end at weight 3; A was seen first
	vs.AddVote(testPlanID, "alice", models.CategoryVenues, "A", 3, false)
	vs.AddVote(testPlanID, "bob", models.CategoryVenues, "B", 3, false)

	itemID, weight, ok := vs.TopChoice(testPlanID, models.CategoryVenues)
	assert.True(t, ok)
	assert.Equal(t, "A", itemID)
	assert.Equal(t, 3, weight)
}

func TestTopChoiceEmptyCategory(t *testing.T) {
	vs := NewVoteService()

	_, _, ok := vs.TopChoice(testPlanID, models.CategoryActivities)
	assert.False(t, ok)
}

func TestConsensusScore(t *testing.T) {
	vs := NewVoteService()

	// 5 unique voters, 15 total votes across 3 categories -> 100
	voters := []string{"u1", "u2", "u3", "u4", "u5"}
	for i, voter := range voters {
		for _, category := range []string{models.CategoryDates, models.CategoryVenues, models.CategoryActivities} {
			vs.AddVote(testPlanID, voter, category, "item-"+category+"-"+voters[i], 1, false)
		}
	}

	assert.Equal(t, 100, vs.ConsensusScore(testPlanID))
}

func TestConsensusScorePartialEngagement(t *testing.T) {
	vs := NewVoteService()

	// 2 voters, 3 votes total -> round(100*3/6) = 50
	vs.AddVote(testPlanID, "u1", models.CategoryDates, "d1", 1, false)
	vs.AddVote(testPlanID, "u1", models.CategoryVenues, "v1", 1, false)
	vs.AddVote(testPlanID, "u2", models.CategoryDates, "d1", 1, false)

	assert.Equal(t, 50, vs.ConsensusScore(testPlanID))
}

func TestConsensusScoreNoVoters(t *testing.T) {
	vs := NewVoteService()
	assert.Equal(t, 0, vs.ConsensusScore(testPlanID))
}

func TestMinorityReportThreshold(t *testing.T) {
	vs := NewVoteService()

	// venues: second place has weight 2 -> reported
	vs.AddVote(testPlanID, "u1", models.CategoryVenues, "park", 3, false)
	vs.AddVote(testPlanID, "u2", models.CategoryVenues, "museum", 2, false)

	// activities: second place has weight 1 -> omitted
	vs.AddVote(testPlanID, "u1", models.CategoryActivities, "hiking", 3, false)
	vs.AddVote(testPlanID, "u2", models.CategoryActivities, "bowling", 1, false)

	reports := vs.MinorityReports(testPlanID)
	assert.Len(t, reports, 1)
	assert.Equal(t, models.CategoryVenues, reports[0].Category)
	assert.Equal(t, "museum", reports[0].ItemID)
	assert.Equal(t, 2, reports[0].Weight)
}

func TestMinorityReportNeedsTwoItems(t *testing.T) {
	vs := NewVoteService()

	vs.AddVote(testPlanID, "u1", models.CategoryVenues, "park", 5, false)

	assert.Empty(t, vs.MinorityReports(testPlanID))
}

func TestProgressRelativeToLeader(t *testing.T) {
	vs := NewVoteService()

	vs.AddVote(testPlanID, "u1", models.CategoryVenues, "park", 4, false)
	vs.AddVote(testPlanID, "u2", models.CategoryVenues, "museum", 1, false)

	assert.Equal(t, 100, vs.Progress(testPlanID, models.CategoryVenues, "park"))
	assert.Equal(t, 25, vs.Progress(testPlanID, models.CategoryVenues, "museum"))
}

func TestProgressEmptyCategoryIsZero(t *testing.T) {
	vs := NewVoteService()

	// No votes anywhere in the category: all progress values are 0
	assert.Equal(t, 0, vs.Progress(testPlanID, models.CategoryVenues, "park"))
}

func TestCategoryResultsEphemeralFlag(t *testing.T) {
	vs := NewVoteService()

	vs.AddVote(testPlanID, "u1", models.CategoryVenues, "park", 1, false)
	vs.AddVote(testPlanID, "u1", models.CategoryDates, "d1", 1, false)

	assert.True(t, vs.CategoryResults(testPlanID, models.CategoryVenues).Ephemeral)
	assert.False(t, vs.CategoryResults(testPlanID, models.CategoryDates).Ephemeral)
}

func TestDateOptionResultPercentages(t *testing.T) {
	noVotes := &models.DateOption{ID: "d0", OptionDate: "2026-08-01"}
	result := DateOptionResult(noVotes)
	assert.Equal(t, 0, result.AvailabilityPercentage, "zero rows must yield 0, not NaN")
	assert.False(t, result.Optimal)

	threeOfFour := &models.DateOption{
		ID: "d1",
		Availability: []models.Availability{
			{Email: "a@x.com", IsAvailable: true},
			{Email: "b@x.com", IsAvailable: true},
			{Email: "c@x.com", IsAvailable: true},
			{Email: "d@x.com", IsAvailable: false},
		},
	}
	result = DateOptionResult(threeOfFour)
	assert.Equal(t, 75, result.AvailabilityPercentage)
	assert.False(t, result.Optimal)

	fourOfFive := &models.DateOption{
		ID: "d2",
		Availability: []models.Availability{
			{Email: "a@x.com", IsAvailable: true},
			{Email: "b@x.com", IsAvailable: true},
			{Email: "c@x.com", IsAvailable: true},
			{Email: "d@x.com", IsAvailable: true},
			{Email: "e@x.com", IsAvailable: false},
		},
	}
	result = DateOptionResult(fourOfFive)
	assert.Equal(t, 80, result.AvailabilityPercentage)
	assert.True(t, result.Optimal)
}

func TestResultsAssemblesAllCategories(t *testing.T) {
	vs := NewVoteService()
	plan := &models.Plan{
		ID: testPlanID,
		DateOptions: []models.DateOption{
			{ID: "d1", OptionDate: "2026-08-01"},
		},
	}

	vs.AddVote(testPlanID, "u1", models.CategoryVenues, "park", 2, false)

	results := vs.Results(plan)
	assert.Len(t, results.Categories, models.CategoryCount)
	assert.Len(t, results.DateOptions, 1)
	assert.Equal(t, testPlanID, results.PlanID)
}

func TestDropLedger(t *testing.T) {
	vs := NewVoteService()

	vs.AddVote("plan-a", "u1", models.CategoryVenues, "park", 1, false)
	vs.AddVote("plan-b", "u1", models.CategoryVenues, "park", 1, false)
	assert.Equal(t, 2, vs.LedgerCount())

	vs.DropLedger("plan-a")
	assert.Equal(t, 1, vs.LedgerCount())
	assert.Equal(t, 0, vs.GetVoteWeight("plan-a", models.CategoryVenues, "park"))
	assert.Equal(t, 1, vs.GetVoteWeight("plan-b", models.CategoryVenues, "park"))
}
