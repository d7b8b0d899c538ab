package service

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/storage/sqlite"
)

const testPassphrase = "correct horse battery"

// setupTestServer creates a test server with both SettleService and GroupService
func setupTestServer(t *testing.T) (*SettleServiceClient, *GroupServiceClient) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	metrics := middleware.NewMetrics(prometheus.NewRegistry())
	interceptors := connect.WithInterceptors(
		middleware.OptionalAuth(jwtManager),
		middleware.LoggingInterceptor(),
		metrics.Interceptor(),
	)

	settlePath, settleHandler := NewSettleServiceHandler(NewSettleService(metrics), interceptors)
	groupPath, groupHandler := NewGroupServiceHandler(NewGroupService(store, jwtManager, metrics), interceptors)

	mux := http.NewServeMux()
	mux.Handle(settlePath, settleHandler)
	mux.Handle(groupPath, groupHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return NewSettleServiceClient(http.DefaultClient, server.URL),
		NewGroupServiceClient(http.DefaultClient, server.URL)
}

func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if token != "" {
		req.Header().Set("Authorization", "Bearer "+token)
	}
	return req
}

func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Fatalf("expected code %v, got %v (%v)", code, got, err)
	}
}

func TestSettle(t *testing.T) {
	client, _ := setupTestServer(t)
	ctx := context.Background()

	t.Run("chain collapses", func(t *testing.T) {
		resp, err := client.Settle(ctx, connect.NewRequest(&SettleRequest{
			Participants: 3,
			Debts: []Debt{
				{From: 1, To: 2, Amount: 10},
				{From: 2, To: 3, Amount: 10},
			},
		}))
		if err != nil {
			t.Fatalf("Settle failed: %v", err)
		}

		if len(resp.Msg.Transfers) != 1 {
			t.Fatalf("expected 1 transfer, got %+v", resp.Msg.Transfers)
		}
		got := resp.Msg.Transfers[0]
		if got.From != 1 || got.To != 3 || got.Amount != 10 {
			t.Errorf("unexpected transfer %+v", got)
		}

		wantBalances := []int64{-10, 0, 10}
		for i, b := range resp.Msg.Balances {
			if b.Participant != i+1 || b.Amount != wantBalances[i] {
				t.Errorf("balance %d = %+v, want %d", i, b, wantBalances[i])
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		resp, err := client.Settle(ctx, connect.NewRequest(&SettleRequest{}))
		if err != nil {
			t.Fatalf("Settle failed: %v", err)
		}
		if len(resp.Msg.Transfers) != 0 {
			t.Errorf("expected no transfers, got %+v", resp.Msg.Transfers)
		}
	})

	t.Run("malformed debt", func(t *testing.T) {
		_, err := client.Settle(ctx, connect.NewRequest(&SettleRequest{
			Participants: 2,
			Debts:        []Debt{{From: 1, To: 1, Amount: 5}},
		}))
		wantCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("balance overflow", func(t *testing.T) {
		_, err := client.Settle(ctx, connect.NewRequest(&SettleRequest{
			Participants: 3,
			Debts: []Debt{
				{From: 1, To: 2, Amount: math.MaxInt64},
				{From: 3, To: 2, Amount: math.MaxInt64},
			},
		}))
		wantCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("too many participants", func(t *testing.T) {
		_, err := client.Settle(ctx, connect.NewRequest(&SettleRequest{Participants: MaxParticipants + 1}))
		wantCode(t, err, connect.CodeInvalidArgument)
	})
}

func createTestGroup(t *testing.T, client *GroupServiceClient, participants int) (*Group, string) {
	t.Helper()

	resp, err := client.CreateGroup(context.Background(), connect.NewRequest(&CreateGroupRequest{
		Name:         "Lisbon Trip",
		Participants: participants,
		Names:        []string{"Alice", "Bob"},
		Passphrase:   testPassphrase,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if resp.Msg.Group == nil || resp.Msg.Group.ID == "" {
		t.Fatal("expected group with ID in response")
	}
	if resp.Msg.Token == "" {
		t.Fatal("expected token in response")
	}
	return resp.Msg.Group, resp.Msg.Token
}

func TestCreateGroupValidation(t *testing.T) {
	_, client := setupTestServer(t)

	tests := []struct {
		name string
		req  *CreateGroupRequest
	}{
		{name: "missing name", req: &CreateGroupRequest{Participants: 2, Passphrase: testPassphrase}},
		{name: "no participants", req: &CreateGroupRequest{Name: "g", Passphrase: testPassphrase}},
		{name: "weak passphrase", req: &CreateGroupRequest{Name: "g", Participants: 2, Passphrase: "123"}},
		{name: "too many names", req: &CreateGroupRequest{Name: "g", Participants: 1, Names: []string{"a", "b"}, Passphrase: testPassphrase}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateGroup(context.Background(), connect.NewRequest(tt.req))
			wantCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestGroupSettlementFlow(t *testing.T) {
	_, client := setupTestServer(t)
	ctx := context.Background()

	group, token := createTestGroup(t, client, 3)

	// 1 owes 2 five, 1 owes 3 five; the zero pair is dropped.
	setResp, err := client.SetAmounts(ctx, withToken(&SetAmountsRequest{
		GroupID: group.ID,
		Amounts: []PairAmount{
			{Low: 1, High: 2, Amount: 5},
			{Low: 1, High: 3, Amount: 5},
			{Low: 2, High: 3, Amount: 0},
		},
	}, token))
	if err != nil {
		t.Fatalf("SetAmounts failed: %v", err)
	}
	if len(setResp.Msg.Amounts) != 2 {
		t.Fatalf("expected 2 stored amounts, got %+v", setResp.Msg.Amounts)
	}

	solveResp, err := client.SolveGroup(ctx, withToken(&SolveGroupRequest{GroupID: group.ID}, token))
	if err != nil {
		t.Fatalf("SolveGroup failed: %v", err)
	}

	plan := solveResp.Msg.Plan
	if plan == nil || plan.ID == "" {
		t.Fatal("expected stored plan in response")
	}
	want := []Transfer{
		{From: 1, To: 2, Amount: 5, FromName: "Alice", ToName: "Bob"},
		{From: 1, To: 3, Amount: 5, FromName: "Alice", ToName: "Person 3"},
	}
	if len(plan.Transfers) != len(want) {
		t.Fatalf("transfers = %+v, want %+v", plan.Transfers, want)
	}
	for i := range want {
		if plan.Transfers[i] != want[i] {
			t.Errorf("transfer %d = %+v, want %+v", i, plan.Transfers[i], want[i])
		}
	}
	if solveResp.Msg.Balances[0].Amount != -10 || solveResp.Msg.Balances[0].Name != "Alice" {
		t.Errorf("unexpected balance for participant 1: %+v", solveResp.Msg.Balances[0])
	}

	plansResp, err := client.ListPlans(ctx, connect.NewRequest(&ListPlansRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("ListPlans failed: %v", err)
	}
	if len(plansResp.Msg.Plans) != 1 || plansResp.Msg.Plans[0].ID != plan.ID {
		t.Errorf("expected the solved plan to be listed, got %+v", plansResp.Msg.Plans)
	}

	getResp, err := client.GetGroup(ctx, connect.NewRequest(&GetGroupRequest{GroupID: group.ID}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if getResp.Msg.Group.Participants != 3 || len(getResp.Msg.Amounts) != 2 {
		t.Errorf("unexpected group: %+v with amounts %+v", getResp.Msg.Group, getResp.Msg.Amounts)
	}
}

func TestSolveGroupWithoutAmounts(t *testing.T) {
	_, client := setupTestServer(t)
	group, token := createTestGroup(t, client, 4)

	resp, err := client.SolveGroup(context.Background(), withToken(&SolveGroupRequest{GroupID: group.ID}, token))
	if err != nil {
		t.Fatalf("SolveGroup failed: %v", err)
	}
	if len(resp.Msg.Plan.Transfers) != 0 {
		t.Errorf("expected empty plan, got %+v", resp.Msg.Plan.Transfers)
	}
}

func TestGroupAccess(t *testing.T) {
	_, client := setupTestServer(t)
	ctx := context.Background()

	group, _ := createTestGroup(t, client, 2)
	other, otherToken := createTestGroup(t, client, 2)

	t.Run("writes need a token", func(t *testing.T) {
		_, err := client.SetAmounts(ctx, connect.NewRequest(&SetAmountsRequest{
			GroupID: group.ID,
			Amounts: []PairAmount{{Low: 1, High: 2, Amount: 3}},
		}))
		wantCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("token for another group is denied", func(t *testing.T) {
		_, err := client.SolveGroup(ctx, withToken(&SolveGroupRequest{GroupID: group.ID}, otherToken))
		wantCode(t, err, connect.CodePermissionDenied)

		_, err = client.DeleteGroup(ctx, withToken(&DeleteGroupRequest{GroupID: group.ID}, otherToken))
		wantCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		_, err := client.IssueToken(ctx, connect.NewRequest(&IssueTokenRequest{
			GroupID:    group.ID,
			Passphrase: "not the passphrase",
		}))
		wantCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("issued token grants access", func(t *testing.T) {
		resp, err := client.IssueToken(ctx, connect.NewRequest(&IssueTokenRequest{
			GroupID:    group.ID,
			Passphrase: testPassphrase,
		}))
		if err != nil {
			t.Fatalf("IssueToken failed: %v", err)
		}

		_, err = client.SetAmounts(ctx, withToken(&SetAmountsRequest{
			GroupID: group.ID,
			Amounts: []PairAmount{{Low: 1, High: 2, Amount: -3}},
		}, resp.Msg.Token))
		if err != nil {
			t.Fatalf("SetAmounts with issued token failed: %v", err)
		}
	})

	t.Run("invalid pairs are rejected", func(t *testing.T) {
		_, err := client.SetAmounts(ctx, withToken(&SetAmountsRequest{
			GroupID: other.ID,
			Amounts: []PairAmount{{Low: 2, High: 1, Amount: 3}},
		}, otherToken))
		wantCode(t, err, connect.CodeInvalidArgument)

		_, err = client.SetAmounts(ctx, withToken(&SetAmountsRequest{
			GroupID: other.ID,
			Amounts: []PairAmount{{Low: 1, High: 5, Amount: 3}},
		}, otherToken))
		wantCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("delete with own token", func(t *testing.T) {
		_, err := client.DeleteGroup(ctx, withToken(&DeleteGroupRequest{GroupID: other.ID}, otherToken))
		if err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}

		_, err = client.GetGroup(ctx, connect.NewRequest(&GetGroupRequest{GroupID: other.ID}))
		wantCode(t, err, connect.CodeNotFound)
	})

	t.Run("list groups", func(t *testing.T) {
		resp, err := client.ListGroups(ctx, connect.NewRequest(&ListGroupsRequest{}))
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(resp.Msg.Groups) != 1 || resp.Msg.Groups[0].ID != group.ID {
			t.Errorf("expected only the remaining group, got %+v", resp.Msg.Groups)
		}
	})
}
