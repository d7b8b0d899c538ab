package service

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// SettleServiceName is the fully-qualified name of the SettleService.
	SettleServiceName = "settleup.v1.SettleService"
	// GroupServiceName is the fully-qualified name of the GroupService.
	GroupServiceName = "settleup.v1.GroupService"
)

const (
	SettleServiceSettleProcedure     = "/settleup.v1.SettleService/Settle"
	GroupServiceCreateGroupProcedure = "/settleup.v1.GroupService/CreateGroup"
	GroupServiceIssueTokenProcedure  = "/settleup.v1.GroupService/IssueToken"
	GroupServiceGetGroupProcedure    = "/settleup.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure  = "/settleup.v1.GroupService/ListGroups"
	GroupServiceSetAmountsProcedure  = "/settleup.v1.GroupService/SetAmounts"
	GroupServiceSolveGroupProcedure  = "/settleup.v1.GroupService/SolveGroup"
	GroupServiceListPlansProcedure   = "/settleup.v1.GroupService/ListPlans"
	GroupServiceDeleteGroupProcedure = "/settleup.v1.GroupService/DeleteGroup"
)

// IsAPIPath reports whether path is routed to one of the RPC services.
func IsAPIPath(path string) bool {
	return strings.HasPrefix(path, "/settleup.v1.")
}

// SettleServiceHandler is implemented by SettleService.
type SettleServiceHandler interface {
	Settle(context.Context, *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error)
}

// GroupServiceHandler is implemented by GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	IssueToken(context.Context, *connect.Request[IssueTokenRequest]) (*connect.Response[IssueTokenResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	SetAmounts(context.Context, *connect.Request[SetAmountsRequest]) (*connect.Response[SetAmountsResponse], error)
	SolveGroup(context.Context, *connect.Request[SolveGroupRequest]) (*connect.Response[SolveGroupResponse], error)
	ListPlans(context.Context, *connect.Request[ListPlansRequest]) (*connect.Response[ListPlansResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
}

// NewSettleServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSettleServiceHandler(svc SettleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(SettleServiceSettleProcedure, connect.NewUnaryHandler(SettleServiceSettleProcedure, svc.Settle, opts...))
	return "/" + SettleServiceName + "/", mux
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	mux := http.NewServeMux()
	mux.Handle(GroupServiceCreateGroupProcedure, connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(GroupServiceIssueTokenProcedure, connect.NewUnaryHandler(GroupServiceIssueTokenProcedure, svc.IssueToken, opts...))
	mux.Handle(GroupServiceGetGroupProcedure, connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(GroupServiceListGroupsProcedure, connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(GroupServiceSetAmountsProcedure, connect.NewUnaryHandler(GroupServiceSetAmountsProcedure, svc.SetAmounts, opts...))
	mux.Handle(GroupServiceSolveGroupProcedure, connect.NewUnaryHandler(GroupServiceSolveGroupProcedure, svc.SolveGroup, opts...))
	mux.Handle(GroupServiceListPlansProcedure, connect.NewUnaryHandler(GroupServiceListPlansProcedure, svc.ListPlans, opts...))
	mux.Handle(GroupServiceDeleteGroupProcedure, connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...))
	return "/" + GroupServiceName + "/", mux
}

// SettleServiceClient is a client for the SettleService.
type SettleServiceClient struct {
	settle *connect.Client[SettleRequest, SettleResponse]
}

// NewSettleServiceClient constructs a client for the SettleService at baseURL.
func NewSettleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *SettleServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &SettleServiceClient{
		settle: connect.NewClient[SettleRequest, SettleResponse](httpClient, baseURL+SettleServiceSettleProcedure, opts...),
	}
}

// Settle calls settleup.v1.SettleService.Settle.
func (c *SettleServiceClient) Settle(ctx context.Context, req *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error) {
	return c.settle.CallUnary(ctx, req)
}

// GroupServiceClient is a client for the GroupService.
type GroupServiceClient struct {
	createGroup *connect.Client[CreateGroupRequest, CreateGroupResponse]
	issueToken  *connect.Client[IssueTokenRequest, IssueTokenResponse]
	getGroup    *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups  *connect.Client[ListGroupsRequest, ListGroupsResponse]
	setAmounts  *connect.Client[SetAmountsRequest, SetAmountsResponse]
	solveGroup  *connect.Client[SolveGroupRequest, SolveGroupResponse]
	listPlans   *connect.Client[ListPlansRequest, ListPlansResponse]
	deleteGroup *connect.Client[DeleteGroupRequest, DeleteGroupResponse]
}

// NewGroupServiceClient constructs a client for the GroupService at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &GroupServiceClient{
		createGroup: connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		issueToken:  connect.NewClient[IssueTokenRequest, IssueTokenResponse](httpClient, baseURL+GroupServiceIssueTokenProcedure, opts...),
		getGroup:    connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:  connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		setAmounts:  connect.NewClient[SetAmountsRequest, SetAmountsResponse](httpClient, baseURL+GroupServiceSetAmountsProcedure, opts...),
		solveGroup:  connect.NewClient[SolveGroupRequest, SolveGroupResponse](httpClient, baseURL+GroupServiceSolveGroupProcedure, opts...),
		listPlans:   connect.NewClient[ListPlansRequest, ListPlansResponse](httpClient, baseURL+GroupServiceListPlansProcedure, opts...),
		deleteGroup: connect.NewClient[DeleteGroupRequest, DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) IssueToken(ctx context.Context, req *connect.Request[IssueTokenRequest]) (*connect.Response[IssueTokenResponse], error) {
	return c.issueToken.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) SetAmounts(ctx context.Context, req *connect.Request[SetAmountsRequest]) (*connect.Response[SetAmountsResponse], error) {
	return c.setAmounts.CallUnary(ctx, req)
}

func (c *GroupServiceClient) SolveGroup(ctx context.Context, req *connect.Request[SolveGroupRequest]) (*connect.Response[SolveGroupResponse], error) {
	return c.solveGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListPlans(ctx context.Context, req *connect.Request[ListPlansRequest]) (*connect.Response[ListPlansResponse], error) {
	return c.listPlans.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}
