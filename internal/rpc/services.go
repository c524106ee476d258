package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const (
	AuthServiceName    = "spendly.v1.AuthService"
	GroupServiceName   = "spendly.v1.GroupService"
	ExpenseServiceName = "spendly.v1.ExpenseService"
	BalanceServiceName = "spendly.v1.BalanceService"
	MessageServiceName = "spendly.v1.MessageService"
)

// Procedure paths, as they appear in the URL.
const (
	AuthServiceRegisterProcedure       = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthServiceGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"

	GroupServiceCreateGroupProcedure  = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure     = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure   = "/" + GroupServiceName + "/ListGroups"
	GroupServiceAddMemberProcedure    = "/" + GroupServiceName + "/AddMember"
	GroupServiceRemoveMemberProcedure = "/" + GroupServiceName + "/RemoveMember"
	GroupServiceDeleteGroupProcedure  = "/" + GroupServiceName + "/DeleteGroup"

	ExpenseServiceCreateExpenseProcedure = "/" + ExpenseServiceName + "/CreateExpense"
	ExpenseServiceListExpensesProcedure  = "/" + ExpenseServiceName + "/ListExpenses"

	BalanceServiceGetBreakdownProcedure         = "/" + BalanceServiceName + "/GetBreakdown"
	BalanceServiceGetOverallBreakdownProcedure  = "/" + BalanceServiceName + "/GetOverallBreakdown"
	BalanceServiceGetSettlementOptionsProcedure = "/" + BalanceServiceName + "/GetSettlementOptions"
	BalanceServiceRecordSettlementProcedure     = "/" + BalanceServiceName + "/RecordSettlement"

	MessageServiceSendMessageProcedure  = "/" + MessageServiceName + "/SendMessage"
	MessageServiceListMessagesProcedure = "/" + MessageServiceName + "/ListMessages"
)

// AuthServiceHandler is implemented by the auth service.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
}

// GroupServiceHandler is implemented by the group service.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
}

// ExpenseServiceHandler is implemented by the expense service.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
}

// BalanceServiceHandler is implemented by the balance service.
type BalanceServiceHandler interface {
	GetBreakdown(context.Context, *connect.Request[GetBreakdownRequest]) (*connect.Response[GetBreakdownResponse], error)
	GetOverallBreakdown(context.Context, *connect.Request[GetOverallBreakdownRequest]) (*connect.Response[GetOverallBreakdownResponse], error)
	GetSettlementOptions(context.Context, *connect.Request[GetSettlementOptionsRequest]) (*connect.Response[GetSettlementOptionsResponse], error)
	RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error)
}

// MessageServiceHandler is implemented by the message service.
type MessageServiceHandler interface {
	SendMessage(context.Context, *connect.Request[SendMessageRequest]) (*connect.Response[SendMessageResponse], error)
	ListMessages(context.Context, *connect.Request[ListMessagesRequest]) (*connect.Response[ListMessagesResponse], error)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSON()}, opts...)
}

// NewAuthServiceHandler builds an HTTP handler for the auth service.
// It returns the path prefix to mount the handler on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceGetCurrentUserProcedure, connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...))
	return "/" + AuthServiceName + "/", mux
}

// NewGroupServiceHandler builds an HTTP handler for the group service.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(GroupServiceCreateGroupProcedure, connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(GroupServiceGetGroupProcedure, connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(GroupServiceListGroupsProcedure, connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(GroupServiceAddMemberProcedure, connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(GroupServiceRemoveMemberProcedure, connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...))
	mux.Handle(GroupServiceDeleteGroupProcedure, connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...))
	return "/" + GroupServiceName + "/", mux
}

// NewExpenseServiceHandler builds an HTTP handler for the expense service.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceCreateExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...))
	mux.Handle(ExpenseServiceListExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...))
	return "/" + ExpenseServiceName + "/", mux
}

// NewBalanceServiceHandler builds an HTTP handler for the balance service.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(BalanceServiceGetBreakdownProcedure, connect.NewUnaryHandler(BalanceServiceGetBreakdownProcedure, svc.GetBreakdown, opts...))
	mux.Handle(BalanceServiceGetOverallBreakdownProcedure, connect.NewUnaryHandler(BalanceServiceGetOverallBreakdownProcedure, svc.GetOverallBreakdown, opts...))
	mux.Handle(BalanceServiceGetSettlementOptionsProcedure, connect.NewUnaryHandler(BalanceServiceGetSettlementOptionsProcedure, svc.GetSettlementOptions, opts...))
	mux.Handle(BalanceServiceRecordSettlementProcedure, connect.NewUnaryHandler(BalanceServiceRecordSettlementProcedure, svc.RecordSettlement, opts...))
	return "/" + BalanceServiceName + "/", mux
}

// NewMessageServiceHandler builds an HTTP handler for the message service.
func NewMessageServiceHandler(svc MessageServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(MessageServiceSendMessageProcedure, connect.NewUnaryHandler(MessageServiceSendMessageProcedure, svc.SendMessage, opts...))
	mux.Handle(MessageServiceListMessagesProcedure, connect.NewUnaryHandler(MessageServiceListMessagesProcedure, svc.ListMessages, opts...))
	return "/" + MessageServiceName + "/", mux
}
