package ledger

import (
	"context"

	"github.com/louisbranch/taxledger/internal/platform/grpc/jsoncodec"
	"google.golang.org/grpc"
)

const (
	SeasonServiceName  = "taxledger.ledger.v1.SeasonService"
	FilingServiceName  = "taxledger.ledger.v1.FilingService"
	JournalServiceName = "taxledger.ledger.v1.JournalService"
)

// Full method names.
const (
	SeasonService_DefineSeason_FullMethodName      = "/" + SeasonServiceName + "/DefineSeason"
	SeasonService_OpenSeason_FullMethodName        = "/" + SeasonServiceName + "/OpenSeason"
	SeasonService_CloseSeason_FullMethodName       = "/" + SeasonServiceName + "/CloseSeason"
	SeasonService_UpdateSeasonDates_FullMethodName = "/" + SeasonServiceName + "/UpdateSeasonDates"
	SeasonService_GetSeason_FullMethodName         = "/" + SeasonServiceName + "/GetSeason"
	SeasonService_ListSeasons_FullMethodName       = "/" + SeasonServiceName + "/ListSeasons"
	SeasonService_IsSeasonOpen_FullMethodName      = "/" + SeasonServiceName + "/IsSeasonOpen"
	SeasonService_Pause_FullMethodName             = "/" + SeasonServiceName + "/Pause"
	SeasonService_Unpause_FullMethodName           = "/" + SeasonServiceName + "/Unpause"
	SeasonService_GetStatus_FullMethodName         = "/" + SeasonServiceName + "/GetStatus"

	FilingService_Initialize_FullMethodName              = "/" + FilingServiceName + "/Initialize"
	FilingService_SubmitFiling_FullMethodName            = "/" + FilingServiceName + "/SubmitFiling"
	FilingService_FlagForAudit_FullMethodName            = "/" + FilingServiceName + "/FlagForAudit"
	FilingService_ApproveFiling_FullMethodName           = "/" + FilingServiceName + "/ApproveFiling"
	FilingService_DisputeFiling_FullMethodName           = "/" + FilingServiceName + "/DisputeFiling"
	FilingService_GetFiling_FullMethodName               = "/" + FilingServiceName + "/GetFiling"
	FilingService_GetFilingByTaxpayerYear_FullMethodName = "/" + FilingServiceName + "/GetFilingByTaxpayerYear"
	FilingService_GetFilingHistory_FullMethodName        = "/" + FilingServiceName + "/GetFilingHistory"
	FilingService_Pause_FullMethodName                   = "/" + FilingServiceName + "/Pause"
	FilingService_Unpause_FullMethodName                 = "/" + FilingServiceName + "/Unpause"
	FilingService_GetStatus_FullMethodName               = "/" + FilingServiceName + "/GetStatus"

	JournalService_ListEvents_FullMethodName      = "/" + JournalServiceName + "/ListEvents"
	JournalService_ListAuditEvents_FullMethodName = "/" + JournalServiceName + "/ListAuditEvents"
)

// SeasonServiceServer is the server API for SeasonService.
type SeasonServiceServer interface {
	DefineSeason(context.Context, *DefineSeasonRequest) (*SeasonResponse, error)
	OpenSeason(context.Context, *SeasonYearRequest) (*SeasonResponse, error)
	CloseSeason(context.Context, *SeasonYearRequest) (*SeasonResponse, error)
	UpdateSeasonDates(context.Context, *UpdateSeasonDatesRequest) (*SeasonResponse, error)
	GetSeason(context.Context, *SeasonYearRequest) (*SeasonResponse, error)
	ListSeasons(context.Context, *ListSeasonsRequest) (*ListSeasonsResponse, error)
	IsSeasonOpen(context.Context, *SeasonYearRequest) (*IsSeasonOpenResponse, error)
	Pause(context.Context, *StatusRequest) (*SeasonStatusResponse, error)
	Unpause(context.Context, *StatusRequest) (*SeasonStatusResponse, error)
	GetStatus(context.Context, *StatusRequest) (*SeasonStatusResponse, error)
}

// FilingServiceServer is the server API for FilingService.
type FilingServiceServer interface {
	Initialize(context.Context, *InitializeRequest) (*FilingStatusResponse, error)
	SubmitFiling(context.Context, *SubmitFilingRequest) (*FilingResponse, error)
	FlagForAudit(context.Context, *FilingIDRequest) (*FilingResponse, error)
	ApproveFiling(context.Context, *FilingIDRequest) (*FilingResponse, error)
	DisputeFiling(context.Context, *FilingIDRequest) (*FilingResponse, error)
	GetFiling(context.Context, *FilingIDRequest) (*FilingResponse, error)
	GetFilingByTaxpayerYear(context.Context, *TaxpayerYearRequest) (*FilingResponse, error)
	GetFilingHistory(context.Context, *FilingIDRequest) (*FilingHistoryResponse, error)
	Pause(context.Context, *StatusRequest) (*FilingStatusResponse, error)
	Unpause(context.Context, *StatusRequest) (*FilingStatusResponse, error)
	GetStatus(context.Context, *StatusRequest) (*FilingStatusResponse, error)
}

// JournalServiceServer is the server API for JournalService.
type JournalServiceServer interface {
	ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error)
	ListAuditEvents(context.Context, *ListAuditEventsRequest) (*ListAuditEventsResponse, error)
}

// unary builds a method descriptor that decodes Req and dispatches to fn
// through the server interceptor chain.
func unary[S any, Req any, Resp any](fullMethod, name string, fn func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return fn(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return fn(srv.(S), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// SeasonService_ServiceDesc is the grpc.ServiceDesc for SeasonService.
var SeasonService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: SeasonServiceName,
	HandlerType: (*SeasonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(SeasonService_DefineSeason_FullMethodName, "DefineSeason", SeasonServiceServer.DefineSeason),
		unary(SeasonService_OpenSeason_FullMethodName, "OpenSeason", SeasonServiceServer.OpenSeason),
		unary(SeasonService_CloseSeason_FullMethodName, "CloseSeason", SeasonServiceServer.CloseSeason),
		unary(SeasonService_UpdateSeasonDates_FullMethodName, "UpdateSeasonDates", SeasonServiceServer.UpdateSeasonDates),
		unary(SeasonService_GetSeason_FullMethodName, "GetSeason", SeasonServiceServer.GetSeason),
		unary(SeasonService_ListSeasons_FullMethodName, "ListSeasons", SeasonServiceServer.ListSeasons),
		unary(SeasonService_IsSeasonOpen_FullMethodName, "IsSeasonOpen", SeasonServiceServer.IsSeasonOpen),
		unary(SeasonService_Pause_FullMethodName, "Pause", SeasonServiceServer.Pause),
		unary(SeasonService_Unpause_FullMethodName, "Unpause", SeasonServiceServer.Unpause),
		unary(SeasonService_GetStatus_FullMethodName, "GetStatus", SeasonServiceServer.GetStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taxledger/ledger/v1/season.proto",
}

// FilingService_ServiceDesc is the grpc.ServiceDesc for FilingService.
var FilingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: FilingServiceName,
	HandlerType: (*FilingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(FilingService_Initialize_FullMethodName, "Initialize", FilingServiceServer.Initialize),
		unary(FilingService_SubmitFiling_FullMethodName, "SubmitFiling", FilingServiceServer.SubmitFiling),
		unary(FilingService_FlagForAudit_FullMethodName, "FlagForAudit", FilingServiceServer.FlagForAudit),
		unary(FilingService_ApproveFiling_FullMethodName, "ApproveFiling", FilingServiceServer.ApproveFiling),
		unary(FilingService_DisputeFiling_FullMethodName, "DisputeFiling", FilingServiceServer.DisputeFiling),
		unary(FilingService_GetFiling_FullMethodName, "GetFiling", FilingServiceServer.GetFiling),
		unary(FilingService_GetFilingByTaxpayerYear_FullMethodName, "GetFilingByTaxpayerYear", FilingServiceServer.GetFilingByTaxpayerYear),
		unary(FilingService_GetFilingHistory_FullMethodName, "GetFilingHistory", FilingServiceServer.GetFilingHistory),
		unary(FilingService_Pause_FullMethodName, "Pause", FilingServiceServer.Pause),
		unary(FilingService_Unpause_FullMethodName, "Unpause", FilingServiceServer.Unpause),
		unary(FilingService_GetStatus_FullMethodName, "GetStatus", FilingServiceServer.GetStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taxledger/ledger/v1/filing.proto",
}

// JournalService_ServiceDesc is the grpc.ServiceDesc for JournalService.
var JournalService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: JournalServiceName,
	HandlerType: (*JournalServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(JournalService_ListEvents_FullMethodName, "ListEvents", JournalServiceServer.ListEvents),
		unary(JournalService_ListAuditEvents_FullMethodName, "ListAuditEvents", JournalServiceServer.ListAuditEvents),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taxledger/ledger/v1/journal.proto",
}

// RegisterSeasonServiceServer registers srv on s.
func RegisterSeasonServiceServer(s grpc.ServiceRegistrar, srv SeasonServiceServer) {
	s.RegisterService(&SeasonService_ServiceDesc, srv)
}

// RegisterFilingServiceServer registers srv on s.
func RegisterFilingServiceServer(s grpc.ServiceRegistrar, srv FilingServiceServer) {
	s.RegisterService(&FilingService_ServiceDesc, srv)
}

// RegisterJournalServiceServer registers srv on s.
func RegisterJournalServiceServer(s grpc.ServiceRegistrar, srv JournalServiceServer) {
	s.RegisterService(&JournalService_ServiceDesc, srv)
}

// ReadMethods lists the full method names that never mutate state.
var ReadMethods = map[string]bool{
	SeasonService_GetSeason_FullMethodName:               true,
	SeasonService_ListSeasons_FullMethodName:             true,
	SeasonService_IsSeasonOpen_FullMethodName:            true,
	SeasonService_GetStatus_FullMethodName:               true,
	FilingService_GetFiling_FullMethodName:               true,
	FilingService_GetFilingByTaxpayerYear_FullMethodName: true,
	FilingService_GetFilingHistory_FullMethodName:        true,
	FilingService_GetStatus_FullMethodName:               true,
	JournalService_ListEvents_FullMethodName:             true,
	JournalService_ListAuditEvents_FullMethodName:        true,
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(jsoncodec.Name)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}
