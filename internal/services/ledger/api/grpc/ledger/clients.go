package ledger

import (
	"context"

	"google.golang.org/grpc"
)

// SeasonServiceClient is the client API for SeasonService.
type SeasonServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewSeasonServiceClient returns a client bound to cc.
func NewSeasonServiceClient(cc grpc.ClientConnInterface) *SeasonServiceClient {
	return &SeasonServiceClient{cc: cc}
}

func (c *SeasonServiceClient) DefineSeason(ctx context.Context, in *DefineSeasonRequest, opts ...grpc.CallOption) (*SeasonResponse, error) {
	return invoke[SeasonResponse](ctx, c.cc, SeasonService_DefineSeason_FullMethodName, in, opts)
}

func (c *SeasonServiceClient) OpenSeason(ctx context.Context, in *SeasonYearRequest, opts ...grpc.CallOption) (*SeasonResponse, error) {
	return invoke[SeasonResponse](ctx, c.cc, SeasonService_OpenSeason_FullMethodName, in, opts)
}

func (c *SeasonServiceClient) CloseSeason(ctx context.Context, in *SeasonYearRequest, opts ...grpc.CallOption) (*SeasonResponse, error) {
	return invoke[SeasonResponse](ctx, c.cc, SeasonService_CloseSeason_FullMethodName, in, opts)
}

func (c *SeasonServiceClient) UpdateSeasonDates(ctx context.Context, in *UpdateSeasonDatesRequest, opts ...grpc.CallOption) (*SeasonResponse, error) {
	return invoke[SeasonResponse](ctx, c.cc, SeasonService_UpdateSeasonDates_FullMethodName, in, opts)
}

func (c *SeasonServiceClient) GetSeason(ctx context.Context, in *SeasonYearRequest, opts ...grpc.CallOption) (*SeasonResponse, error) {
	return invoke[SeasonResponse](ctx, c.cc, SeasonService_GetSeason_FullMethodName, in, opts)
}

func (c *SeasonServiceClient) ListSeasons(ctx context.Context, in *ListSeasonsRequest, opts ...grpc.CallOption) (*ListSeasonsResponse, error) {
	return invoke[ListSeasonsResponse](ctx, c.cc, SeasonService_ListSeasons_FullMethodName, in, opts)
}

func (c *SeasonServiceClient) IsSeasonOpen(ctx context.Context, in *SeasonYearRequest, opts ...grpc.CallOption) (*IsSeasonOpenResponse, error) {
	return invoke[IsSeasonOpenResponse](ctx, c.cc, SeasonService_IsSeasonOpen_FullMethodName, in, opts)
}

func (c *SeasonServiceClient) Pause(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*SeasonStatusResponse, error) {
	return invoke[SeasonStatusResponse](ctx, c.cc, SeasonService_Pause_FullMethodName, in, opts)
}

func (c *SeasonServiceClient) Unpause(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*SeasonStatusResponse, error) {
	return invoke[SeasonStatusResponse](ctx, c.cc, SeasonService_Unpause_FullMethodName, in, opts)
}

func (c *SeasonServiceClient) GetStatus(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*SeasonStatusResponse, error) {
	return invoke[SeasonStatusResponse](ctx, c.cc, SeasonService_GetStatus_FullMethodName, in, opts)
}

// FilingServiceClient is the client API for FilingService.
type FilingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewFilingServiceClient returns a client bound to cc.
func NewFilingServiceClient(cc grpc.ClientConnInterface) *FilingServiceClient {
	return &FilingServiceClient{cc: cc}
}

func (c *FilingServiceClient) Initialize(ctx context.Context, in *InitializeRequest, opts ...grpc.CallOption) (*FilingStatusResponse, error) {
	return invoke[FilingStatusResponse](ctx, c.cc, FilingService_Initialize_FullMethodName, in, opts)
}

func (c *FilingServiceClient) SubmitFiling(ctx context.Context, in *SubmitFilingRequest, opts ...grpc.CallOption) (*FilingResponse, error) {
	return invoke[FilingResponse](ctx, c.cc, FilingService_SubmitFiling_FullMethodName, in, opts)
}

func (c *FilingServiceClient) FlagForAudit(ctx context.Context, in *FilingIDRequest, opts ...grpc.CallOption) (*FilingResponse, error) {
	return invoke[FilingResponse](ctx, c.cc, FilingService_FlagForAudit_FullMethodName, in, opts)
}

func (c *FilingServiceClient) ApproveFiling(ctx context.Context, in *FilingIDRequest, opts ...grpc.CallOption) (*FilingResponse, error) {
	return invoke[FilingResponse](ctx, c.cc, FilingService_ApproveFiling_FullMethodName, in, opts)
}

func (c *FilingServiceClient) DisputeFiling(ctx context.Context, in *FilingIDRequest, opts ...grpc.CallOption) (*FilingResponse, error) {
	return invoke[FilingResponse](ctx, c.cc, FilingService_DisputeFiling_FullMethodName, in, opts)
}

func (c *FilingServiceClient) GetFiling(ctx context.Context, in *FilingIDRequest, opts ...grpc.CallOption) (*FilingResponse, error) {
	return invoke[FilingResponse](ctx, c.cc, FilingService_GetFiling_FullMethodName, in, opts)
}

func (c *FilingServiceClient) GetFilingByTaxpayerYear(ctx context.Context, in *TaxpayerYearRequest, opts ...grpc.CallOption) (*FilingResponse, error) {
	return invoke[FilingResponse](ctx, c.cc, FilingService_GetFilingByTaxpayerYear_FullMethodName, in, opts)
}

func (c *FilingServiceClient) GetFilingHistory(ctx context.Context, in *FilingIDRequest, opts ...grpc.CallOption) (*FilingHistoryResponse, error) {
	return invoke[FilingHistoryResponse](ctx, c.cc, FilingService_GetFilingHistory_FullMethodName, in, opts)
}

func (c *FilingServiceClient) Pause(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*FilingStatusResponse, error) {
	return invoke[FilingStatusResponse](ctx, c.cc, FilingService_Pause_FullMethodName, in, opts)
}

func (c *FilingServiceClient) Unpause(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*FilingStatusResponse, error) {
	return invoke[FilingStatusResponse](ctx, c.cc, FilingService_Unpause_FullMethodName, in, opts)
}

func (c *FilingServiceClient) GetStatus(ctx context.Context, in *StatusRequest, opts ...grpc.CallOption) (*FilingStatusResponse, error) {
	return invoke[FilingStatusResponse](ctx, c.cc, FilingService_GetStatus_FullMethodName, in, opts)
}

// JournalServiceClient is the client API for JournalService.
type JournalServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewJournalServiceClient returns a client bound to cc.
func NewJournalServiceClient(cc grpc.ClientConnInterface) *JournalServiceClient {
	return &JournalServiceClient{cc: cc}
}

func (c *JournalServiceClient) ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	return invoke[ListEventsResponse](ctx, c.cc, JournalService_ListEvents_FullMethodName, in, opts)
}

func (c *JournalServiceClient) ListAuditEvents(ctx context.Context, in *ListAuditEventsRequest, opts ...grpc.CallOption) (*ListAuditEventsResponse, error) {
	return invoke[ListAuditEventsResponse](ctx, c.cc, JournalService_ListAuditEvents_FullMethodName, in, opts)
}
