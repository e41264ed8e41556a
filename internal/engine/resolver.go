package engine

import (
	"github.com/google/uuid"

	"github.com/yuta/auction-draft-backend/internal/domain"
)

// resolveUnsold settles everything left in the unsold queue once the
// primary queue is exhausted. While any capacity-eligible team still has
// points, placement is a seeded random draw among eligible teams (same
// generator as the shuffle, stepped by resolution order, so every client
// can verify it). When every eligible team is broke, the least-filled team
// takes the member, with team creation order breaking ties. Every
// placement is free and flagged as an auto-assignment. Already-resolved
// targets are skipped, so a repeated pass is a no-op.
func (d *Draft) resolveUnsold() ([]Event, []*domain.AuctionResult, error) {
	if len(d.unsold) == 0 {
		return nil, nil, nil
	}

	var seed int64
	if d.shuffle != nil {
		seed = d.shuffle.Seed
	}
	seq := NewSequence(seed)

	var assignments []AutoAssignment
	var produced []*domain.AuctionResult

	for len(d.unsold) > 0 {
		target := d.unsold[0]
		d.unsold = d.unsold[1:]
		if d.resolved[target] {
			continue
		}

		var eligible []uuid.UUID
		for _, teamID := range d.teamOrder {
			if d.slotsLeft(teamID) > 0 {
				eligible = append(eligible, teamID)
			}
		}
		if len(eligible) == 0 {
			return nil, nil, domain.ErrNoEligibleTeam
		}

		allBroke := true
		for _, teamID := range eligible {
			if d.teams[teamID].CurrentPoints > 0 {
				allBroke = false
				break
			}
		}

		var chosen uuid.UUID
		if allBroke {
			chosen = eligible[0]
			for _, teamID := range eligible[1:] {
				if d.memberCount(teamID) < d.memberCount(chosen) {
					chosen = teamID
				}
			}
		} else {
			chosen = eligible[seq.Intn(len(d.results), len(eligible))]
		}

		d.participants[target].TeamID = &chosen
		res := d.appendResult(target, chosen, 0, true)
		produced = append(produced, res)
		assignments = append(assignments, AutoAssignment{
			TargetID: target,
			TeamID:   chosen,
		})
	}

	if len(assignments) == 0 {
		return nil, nil, nil
	}
	return []Event{{Type: EventItemsAutoAssigned, Payload: ItemsAutoAssignedPayload{
		Assignments: assignments,
	}}}, produced, nil
}
