package services

import (
	"math"
	"sync"

	"planpal-api/models"
)

// VoteService holds the in-memory vote ledgers, one per plan, and
// computes the aggregation snapshots rendered to the group. Venue and
// activity votes live only here; date votes are mirrored into durable
// Availability rows by the voting bridge.
type VoteService struct {
	ledgers map[string][]models.Vote // planID -> votes in insertion order
	mutex   sync.RWMutex
}

func NewVoteService() *VoteService {
	return &VoteService{
		ledgers: make(map[string][]models.Vote),
	}
}

// AddVote inserts a vote, or replaces weight and isRequired in place
// when the same (userID, category, itemID) already voted. Insertion
// order is preserved so tie-breaks stay deterministic.
func (vs *VoteService) AddVote(planID, userID, category, itemID string, weight int, isRequired bool) {
	vs.mutex.Lock()
	defer vs.mutex.Unlock()

	votes := vs.ledgers[planID]
	for i := range votes {
		if votes[i].UserID == userID && votes[i].Category == category && votes[i].ItemID == itemID {
			votes[i].Weight = weight
			votes[i].IsRequired = isRequired
			return
		}
	}

	vs.ledgers[planID] = append(votes, models.Vote{
		UserID:     userID,
		Category:   category,
		ItemID:     itemID,
		Weight:     weight,
		IsRequired: isRequired,
	})
}

// GetVotesForItem returns all votes for one item in insertion order.
func (vs *VoteService) GetVotesForItem(planID, category, itemID string) []models.Vote {
	vs.mutex.RLock()
	defer vs.mutex.RUnlock()

	var matches []models.Vote
	for _, v := range vs.ledgers[planID] {
		if v.Category == category && v.ItemID == itemID {
			matches = append(matches, v)
		}
	}
	return matches
}

// GetVoteWeight returns the summed weight for one item, 0 when nobody voted.
func (vs *VoteService) GetVoteWeight(planID, category, itemID string) int {
	vs.mutex.RLock()
	defer vs.mutex.RUnlock()

	total := 0
	for _, v := range vs.ledgers[planID] {
		if v.Category == category && v.ItemID == itemID {
			total += v.Weight
		}
	}
	return total
}

// Progress returns the item's weight relative to the category leader,
// as a 0-100 percentage. The floor of 1 on the divisor keeps an empty
// category at 0 rather than dividing by zero.
func (vs *VoteService) Progress(planID, category, itemID string) int {
	vs.mutex.RLock()
	defer vs.mutex.RUnlock()

	weights, _ := vs.categoryWeights(planID, category)

	maxWeight := 0
	for _, w := range weights {
		if w > maxWeight {
			maxWeight = w
		}
	}
	if maxWeight < 1 {
		maxWeight = 1
	}

	return int(math.Round(100 * float64(weights[itemID]) / float64(maxWeight)))
}

// TopChoice returns the item with the highest summed weight in a
// category. Ties break toward the first-encountered item during the
// grouping scan. ok is false when the category has no votes.
func (vs *VoteService) TopChoice(planID, category string) (itemID string, weight int, ok bool) {
	vs.mutex.RLock()
	defer vs.mutex.RUnlock()

	weights, order := vs.categoryWeights(planID, category)
	if len(order) == 0 {
		return "", 0, false
	}

	best := order[0]
	for _, id := range order[1:] {
		if weights[id] > weights[best] {
			best = id
		}
	}
	return best, weights[best], true
}

// ConsensusScore is a rough "how much of the group voted in how many
// categories" heuristic: round(100 * totalVotes / (voters * 3)). It is
// not a statistically rigorous consensus measure.
func (vs *VoteService) ConsensusScore(planID string) int {
	vs.mutex.RLock()
	defer vs.mutex.RUnlock()

	votes := vs.ledgers[planID]
	if len(votes) == 0 {
		return 0
	}

	voters := make(map[string]bool)
	for _, v := range votes {
		voters[v.UserID] = true
	}
	if len(voters) == 0 {
		return 0
	}

	return int(math.Round(100 * float64(len(votes)) / float64(len(voters)*models.CategoryCount)))
}

// MinorityReports surfaces, per category, a second-ranked item whose
// summed weight is at least 2. Categories with fewer than two distinct
// items, or a weaker runner-up, produce nothing.
func (vs *VoteService) MinorityReports(planID string) []models.MinorityReport {
	vs.mutex.RLock()
	defer vs.mutex.RUnlock()

	reports := []models.MinorityReport{}
	for _, category := range []string{models.CategoryDates, models.CategoryVenues, models.CategoryActivities} {
		weights, order := vs.categoryWeights(planID, category)
		if len(order) < 2 {
			continue
		}

		first, second := "", ""
		for _, id := range order {
			if first == "" || weights[id] > weights[first] {
				second = first
				first = id
			} else if second == "" || weights[id] > weights[second] {
				second = id
			}
		}

		if second != "" && weights[second] >= 2 {
			reports = append(reports, models.MinorityReport{
				Category: category,
				ItemID:   second,
				Weight:   weights[second],
			})
		}
	}

	return reports
}

// CategoryResults builds the per-item standings for one category.
func (vs *VoteService) CategoryResults(planID, category string) models.CategoryResult {
	vs.mutex.RLock()
	weights, order := vs.categoryWeights(planID, category)
	vs.mutex.RUnlock()

	maxWeight := 0
	for _, w := range weights {
		if w > maxWeight {
			maxWeight = w
		}
	}
	divisor := maxWeight
	if divisor < 1 {
		divisor = 1
	}

	result := models.CategoryResult{
		Category:  category,
		Items:     []models.ItemResult{},
		Ephemeral: category != models.CategoryDates,
	}

	var top *models.ItemResult
	for _, id := range order {
		item := models.ItemResult{
			ItemID:   id,
			Weight:   weights[id],
			Progress: int(math.Round(100 * float64(weights[id]) / float64(divisor))),
		}
		result.Items = append(result.Items, item)
		if top == nil || item.Weight > top.Weight {
			copied := item
			top = &copied
		}
	}
	result.TopChoice = top

	return result
}

// Results assembles the full aggregation payload: category standings,
// consensus score, minority reports and durable date-option tallies.
func (vs *VoteService) Results(plan *models.Plan) models.PlanResults {
	results := models.PlanResults{
		PlanID:          plan.ID,
		Categories:      []models.CategoryResult{},
		ConsensusScore:  vs.ConsensusScore(plan.ID),
		MinorityReports: vs.MinorityReports(plan.ID),
		DateOptions:     []models.DateOptionResult{},
	}

	for _, category := range []string{models.CategoryDates, models.CategoryVenues, models.CategoryActivities} {
		results.Categories = append(results.Categories, vs.CategoryResults(plan.ID, category))
	}

	for _, option := range plan.DateOptions {
		results.DateOptions = append(results.DateOptions, DateOptionResult(&option))
	}

	return results
}

// DropLedger discards the in-memory ledger for a plan.
func (vs *VoteService) DropLedger(planID string) {
	vs.mutex.Lock()
	defer vs.mutex.Unlock()
	delete(vs.ledgers, planID)
}

// LedgerCount reports how many plans currently hold a ledger.
func (vs *VoteService) LedgerCount() int {
	vs.mutex.RLock()
	defer vs.mutex.RUnlock()
	return len(vs.ledgers)
}

// categoryWeights groups votes by item, returning summed weights and
// the first-seen item order. Callers must hold at least a read lock.
func (vs *VoteService) categoryWeights(planID, category string) (map[string]int, []string) {
	weights := make(map[string]int)
	var order []string

	for _, v := range vs.ledgers[planID] {
		if v.Category != category {
			continue
		}
		if _, seen := weights[v.ItemID]; !seen {
			order = append(order, v.ItemID)
		}
		weights[v.ItemID] += v.Weight
	}

	return weights, order
}

// DateOptionResult computes the availability percentage for one date
// option: round(100 * available / total), 0 when no votes exist. An
// option is flagged optimal from 80 percent up.
func DateOptionResult(option *models.DateOption) models.DateOptionResult {
	available := 0
	for _, a := range option.Availability {
		if a.IsAvailable {
			available++
		}
	}

	total := len(option.Availability)
	percentage := 0
	if total > 0 {
		percentage = int(math.Round(100 * float64(available) / float64(total)))
	}

	return models.DateOptionResult{
		DateOptionID:           option.ID,
		OptionDate:             option.OptionDate,
		OptionTime:             option.OptionTime,
		AvailableCount:         available,
		TotalCount:             total,
		AvailabilityPercentage: percentage,
		Optimal:                percentage >= 80,
	}
}
