package cmd

import (
	"orderflow/internal/adapters/out/httpapi"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/payout"
	"orderflow/internal/pkg/optimistic"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	apiClient     *httpapi.Client
	cartGateway   *httpapi.CartGateway
	orderGateway  *httpapi.OrderGateway
	payoutGateway *httpapi.PayoutGateway
	menuGateway   *httpapi.MenuGateway
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	apiClient := httpapi.NewClient(
		configs.APIBaseURL,
		httpapi.NewStaticCredentialProvider(configs.APIToken),
	)

	return CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		apiClient:     apiClient,
		cartGateway:   httpapi.NewCartGateway(apiClient),
		orderGateway:  httpapi.NewOrderGateway(apiClient),
		payoutGateway: httpapi.NewPayoutGateway(apiClient),
		menuGateway:   httpapi.NewMenuGateway(apiClient),
	}
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateReviewPayoutCommandHandler() commands.ReviewPayoutCommandHandler {
	var f commands.PayoutUoWFactory = FuncPayoutUoWFactory(func() commands.PayoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewPayoutCommandHandler(f)
}

func (c *CompositionRoot) CreateSettlePayoutsCommandHandler() commands.SettlePayoutsCommandHandler {
	var f commands.PayoutUoWFactory = FuncPayoutUoWFactory(func() commands.PayoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSettlePayoutsCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeQuantityCommandHandler(
	store commands.CartStore,
	controller *optimistic.Controller[[]cart.Group],
) commands.ChangeQuantityCommandHandler {
	return commands.NewChangeQuantityCommandHandler(store, c.cartGateway, controller)
}

func (c *CompositionRoot) CreateRemoveItemCommandHandler(
	store commands.CartStore,
	controller *optimistic.Controller[[]cart.Group],
) commands.RemoveItemCommandHandler {
	return commands.NewRemoveItemCommandHandler(store, c.cartGateway, controller)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler(
	store commands.OrderStore,
	controller *optimistic.Controller[*order.Order],
) commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(store, c.orderGateway, controller)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler(
	store commands.OrderStore,
	controller *optimistic.Controller[*order.Order],
) commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(store, c.orderGateway, controller)
}

func (c *CompositionRoot) CreateToggleAvailabilityCommandHandler(
	store commands.AvailabilityStore,
	controller *optimistic.Controller[bool],
) commands.ToggleAvailabilityCommandHandler {
	return commands.NewToggleAvailabilityCommandHandler(store, c.menuGateway, controller)
}

func (c *CompositionRoot) CreateSubmitCheckoutCommandHandler(
	controller *optimistic.Controller[*order.Order],
) commands.SubmitCheckoutCommandHandler {
	return commands.NewSubmitCheckoutCommandHandler(c.orderGateway, c.cartGateway, controller)
}

func (c *CompositionRoot) CreateSubmitPayoutCommandHandler(
	controller *optimistic.Controller[*payout.Request],
) commands.SubmitPayoutCommandHandler {
	return commands.NewSubmitPayoutCommandHandler(c.payoutGateway, controller)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.cartGateway)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orderGateway)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderGateway)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.orderGateway)
}

func (c *CompositionRoot) CreateListPayoutRequestsQueryHandler() queries.ListPayoutRequestsQueryHandler {
	return queries.NewListPayoutRequestsQueryHandler(c.payoutGateway)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPayoutUoWFactory func() commands.PayoutUoW

func (f FuncPayoutUoWFactory) Create() commands.PayoutUoW {
	return f()
}
