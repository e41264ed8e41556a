package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yuta/auction-draft-backend/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	displayName string
	password    string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		displayName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
	}
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"user"`
	AccessToken string `json:"accessToken"`
}

// BuildAndAuthenticate creates a user via API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:          userID,
		DisplayName: authResp.User.DisplayName,
	}

	return user, authResp.AccessToken
}

// RoomFixture is a fully seeded draft room with direct handles on every
// row, for tests that drive the engine or the websocket surface.
type RoomFixture struct {
	Room     *domain.Room
	Host     *domain.Participant
	Teams    []*domain.Team
	Captains []*domain.Participant
	Members  []*domain.Participant
}

// RoomBuilder creates a room with its roster directly in the database
type RoomBuilder struct {
	creator      *domain.User
	settings     domain.RoomSettings
	captainValue int
	memberCount  int
}

// NewRoomBuilder creates a RoomBuilder with small defaults: two teams of
// two members, captains priced at 200 out of 1000 points.
func NewRoomBuilder(creator *domain.User) *RoomBuilder {
	return &RoomBuilder{
		creator: creator,
		settings: domain.RoomSettings{
			TotalPoints:           1000,
			TeamCount:             2,
			MembersPerTeam:        2,
			InitialTimerSeconds:   2,
			TimerExtensionSeconds: 1,
			TimerFloorSeconds:     1,
		},
		captainValue: 200,
		memberCount:  4,
	}
}

// WithSettings replaces the room settings
func (b *RoomBuilder) WithSettings(s domain.RoomSettings) *RoomBuilder {
	b.settings = s
	return b
}

// WithMemberCount sets how many unassigned members are seeded
func (b *RoomBuilder) WithMemberCount(n int) *RoomBuilder {
	b.memberCount = n
	return b
}

// WithCaptainValue sets the captain price for every team
func (b *RoomBuilder) WithCaptainValue(v int) *RoomBuilder {
	b.captainValue = v
	return b
}

// Build writes the room, host, teams, captains, and members
func (b *RoomBuilder) Build(t *testing.T, db *gorm.DB) *RoomFixture {
	t.Helper()

	room := &domain.Room{
		ID:        uuid.New(),
		Title:     "Test Draft",
		ShortCode: uuid.New().String()[:6],
		CreatedBy: b.creator.ID,
		Settings:  b.settings,
		Phase:     domain.PhaseWaiting,
		CreatedAt: time.Now(),
	}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}

	host := &domain.Participant{
		ID:          uuid.New(),
		RoomID:      room.ID,
		UserID:      &b.creator.ID,
		DisplayName: b.creator.DisplayName,
		Role:        domain.RoleHost,
		CreatedAt:   time.Now(),
	}
	if err := db.Create(host).Error; err != nil {
		t.Fatalf("failed to create host: %v", err)
	}

	fixture := &RoomFixture{Room: room, Host: host}

	for i := 0; i < b.settings.TeamCount; i++ {
		teamID := uuid.New()

		captain := &domain.Participant{
			ID:          uuid.New(),
			RoomID:      room.ID,
			DisplayName: fmt.Sprintf("Captain %d", i+1),
			Role:        domain.RoleCaptain,
			TeamID:      &teamID,
			CreatedAt:   time.Now(),
		}
		if err := db.Create(captain).Error; err != nil {
			t.Fatalf("failed to create captain: %v", err)
		}

		team := &domain.Team{
			ID:            teamID,
			RoomID:        room.ID,
			Name:          fmt.Sprintf("Team %d", i+1),
			Color:         fmt.Sprintf("#%06x", 0x111111*(i+1)),
			CaptainID:     captain.ID,
			CaptainValue:  b.captainValue,
			CurrentPoints: b.settings.TotalPoints - b.captainValue,
			CreatedAt:     time.Now(),
		}
		if err := db.Create(team).Error; err != nil {
			t.Fatalf("failed to create team: %v", err)
		}

		fixture.Teams = append(fixture.Teams, team)
		fixture.Captains = append(fixture.Captains, captain)
	}

	for i := 0; i < b.memberCount; i++ {
		member := &domain.Participant{
			ID:          uuid.New(),
			RoomID:      room.ID,
			DisplayName: fmt.Sprintf("Member %d", i+1),
			Role:        domain.RoleMember,
			CreatedAt:   time.Now(),
		}
		if err := db.Create(member).Error; err != nil {
			t.Fatalf("failed to create member: %v", err)
		}
		fixture.Members = append(fixture.Members, member)
	}

	return fixture
}

// ClaimSeat links a user to an unclaimed roster slot by display name
func ClaimSeat(t *testing.T, db *gorm.DB, p *domain.Participant, user *domain.User) {
	t.Helper()

	p.UserID = &user.ID
	if err := db.Model(&domain.Participant{}).Where("id = ?", p.ID).Update("user_id", user.ID).Error; err != nil {
		t.Fatalf("failed to claim seat: %v", err)
	}
}
