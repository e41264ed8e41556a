package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuta/auction-draft-backend/internal/domain"
	"github.com/yuta/auction-draft-backend/internal/testutil"
)

func postJSONWithToken(t *testing.T, url, token string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func createRoomRequest() map[string]interface{} {
	return map[string]interface{}{
		"title":                 "API Draft",
		"totalPoints":           1000,
		"membersPerTeam":        2,
		"initialTimerSeconds":   30,
		"timerExtensionSeconds": 10,
		"timerFloorSeconds":     5,
		"teams": []map[string]interface{}{
			{"name": "Alpha", "color": "#d62828", "captainName": "Captain A", "captainValue": 200},
			{"name": "Bravo", "color": "#003049", "captainName": "Captain B", "captainValue": 200},
		},
		"members": []string{"alice", "bob", "carol", "dave"},
	}
}

func TestRoomAPI_CreateAndGet(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().
		WithDisplayName("roomhost").
		BuildAndAuthenticate(t, ts)

	resp := postJSONWithToken(t, ts.APIURL("/rooms/"), token, createRoomRequest())
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var created struct {
		ID        string              `json:"id"`
		ShortCode string              `json:"shortCode"`
		Title     string              `json:"title"`
		Phase     string              `json:"phase"`
		Settings  domain.RoomSettings `json:"settings"`
	}
	testutil.AssertJSONResponse(t, resp, &created)
	assert.Equal(t, "API Draft", created.Title)
	assert.Equal(t, "waiting", created.Phase)
	assert.Equal(t, 2, created.Settings.TeamCount)
	assert.Len(t, created.ShortCode, 6)

	detail := getWithToken(t, ts.APIURL("/rooms/"+created.ShortCode), token)
	defer detail.Body.Close()
	testutil.AssertStatusCode(t, detail, http.StatusOK)

	var detailResp struct {
		Room struct {
			ID string `json:"id"`
		} `json:"room"`
		Teams        []*domain.Team          `json:"teams"`
		Participants []*domain.Participant   `json:"participants"`
		Bids         []*domain.Bid           `json:"bids"`
		Results      []*domain.AuctionResult `json:"results"`
	}
	testutil.AssertJSONResponse(t, detail, &detailResp)
	assert.Equal(t, created.ID, detailResp.Room.ID)
	assert.Len(t, detailResp.Teams, 2)
	assert.Len(t, detailResp.Participants, 7)
	assert.Empty(t, detailResp.Bids)
	assert.Empty(t, detailResp.Results)

	// Creating a room needs auth
	unauth := postJSON(t, ts.APIURL("/rooms/"), createRoomRequest())
	defer unauth.Body.Close()
	testutil.AssertStatusCode(t, unauth, http.StatusUnauthorized)
}

func TestRoomAPI_Join(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, hostToken := testutil.NewUserBuilder().
		WithDisplayName("joinhost").
		BuildAndAuthenticate(t, ts)

	resp := postJSONWithToken(t, ts.APIURL("/rooms/"), hostToken, createRoomRequest())
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var created struct {
		ShortCode string `json:"shortCode"`
	}
	testutil.AssertJSONResponse(t, resp, &created)

	// alice claims her roster slot
	aliceUser, aliceToken := testutil.NewUserBuilder().
		WithDisplayName("alice").
		BuildAndAuthenticate(t, ts)

	join := postJSONWithToken(t, ts.APIURL("/rooms/"+created.ShortCode+"/join"), aliceToken, map[string]string{})
	defer join.Body.Close()
	testutil.AssertStatusCode(t, join, http.StatusOK)

	var joinResp struct {
		Participant *domain.Participant `json:"participant"`
	}
	testutil.AssertJSONResponse(t, join, &joinResp)
	require.NotNil(t, joinResp.Participant)
	assert.Equal(t, domain.RoleMember, joinResp.Participant.Role)
	require.NotNil(t, joinResp.Participant.UserID)
	assert.Equal(t, aliceUser.ID, *joinResp.Participant.UserID)

	// Unknown room
	missing := postJSONWithToken(t, ts.APIURL("/rooms/ZZZZZZ/join"), aliceToken, map[string]string{})
	defer missing.Body.Close()
	testutil.AssertStatusCode(t, missing, http.StatusNotFound)
}
