package apifake_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nashvel/convenience-store-sub000/cart"
	"github.com/nashvel/convenience-store-sub000/config"
	"github.com/nashvel/convenience-store-sub000/catalog"
	"github.com/nashvel/convenience-store-sub000/internal/apifake"
	"github.com/nashvel/convenience-store-sub000/internal/events"
	"github.com/nashvel/convenience-store-sub000/internal/gateway"
	"github.com/nashvel/convenience-store-sub000/internal/models"
	"github.com/nashvel/convenience-store-sub000/notify"
	"github.com/nashvel/convenience-store-sub000/order"
	"github.com/nashvel/convenience-store-sub000/session"
)

// harness wires the whole client stack against an in-memory backend,
// configured the way a real binary would be: through the environment.
type harness struct {
	srv  *apifake.Server
	ts   *httptest.Server
	cfg  config.Config
	bus  *events.Bus
	sess *session.Store
	gw   *gateway.Client
	cart *cart.Engine
	ords *order.Service
	feed *notify.Feed
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	srv := apifake.New()
	srv.SeedUser("tok-1", "user-1")
	srv.SeedProducts([]models.Product{
		{ID: "p-a", StoreID: "store-1", Name: "Instant Noodles", Price: 50, Stock: 100},
		{ID: "p-b", StoreID: "store-1", Name: "Canned Coffee", Price: 100, Discount: 20, Stock: 40},
	})
	srv.SeedStores([]models.Store{{ID: "store-1", Name: "Corner Mart"}})

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	bus := events.New()
	sess := session.New(nil, bus)
	sess.SignIn(session.Principal{ID: "user-1", Name: "Ana", Role: session.RoleCustomer}, "tok-1")

	t.Setenv("STOREFRONT_API_URL", ts.URL)
	cfg := config.Load()
	gw := gateway.NewFromConfig(cfg, gateway.WithBus(bus), gateway.WithTokenSource(sess.Token))

	feed, unsubscribe := notify.NewFeed(notify.NewHTTPAPI(gw), func() (string, bool) {
		u, ok := sess.Current()
		return u.ID, ok
	}, bus)
	t.Cleanup(unsubscribe)

	return &harness{
		srv:  srv,
		ts:   ts,
		cfg:  cfg,
		bus:  bus,
		sess: sess,
		gw:   gw,
		cart: cart.NewEngine(cart.NewHTTPAPI(gw), sess),
		ords: order.NewService(order.NewHTTPAPI(gw)),
		feed: feed,
	}
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if err := h.cart.AddToCart(ctx, "p-a", "", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := h.cart.TotalItems(); got != 1 {
		t.Fatalf("expected totalItems 1, got %d", got)
	}
	if got := h.cart.Totals().Subtotal; got != 0 {
		t.Fatalf("expected subtotal 0 before selecting, got %v", got)
	}

	id := h.cart.Items()[0].CartItemID
	h.cart.ToggleSelection(id)
	if got := h.cart.Totals().Subtotal; got != 50 {
		t.Fatalf("expected subtotal 50, got %v", got)
	}

	if err := h.cart.UpdateQuantity(ctx, id, 3); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := h.cart.Totals().Subtotal; got != 150 {
		t.Fatalf("expected subtotal 150, got %v", got)
	}
	if got := h.cart.TotalItems(); got != 3 {
		t.Fatalf("expected totalItems 3, got %d", got)
	}

	if err := h.cart.RemoveFromCart(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if got := h.cart.TotalItems(); got != 0 {
		t.Fatalf("expected empty cart, got %d", got)
	}
}

func TestAddWithoutSessionMakesNoCall(t *testing.T) {
	h := newHarness(t)

	anon := session.New(nil, nil)
	engine := cart.NewEngine(cart.NewHTTPAPI(h.gw), anon)

	err := engine.AddToCart(context.Background(), "p-a", "", 1)
	if !errors.Is(err, cart.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestDiscountedTotalsOverHTTP(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if err := h.cart.AddToCart(ctx, "p-b", "", 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	h.cart.ToggleSelectAll()

	totals := h.cart.Totals()
	if totals.Subtotal != 240.00 {
		t.Fatalf("expected discounted subtotal 240.00, got %v", totals.Subtotal)
	}
	if totals.Tax != 24.00 || totals.Total != 264.00 {
		t.Fatalf("expected tax 24.00 and total 264.00, got %+v", totals)
	}
}

func TestCheckoutPlacesOrderAndSignalsNotification(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if err := h.cart.AddToCart(ctx, "p-a", "", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	h.cart.ToggleSelectAll()

	placed, err := h.ords.Place(ctx, "user-1", h.cart, models.ShippingInfo{City: "Naga"})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if placed.Status != models.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", placed.Status)
	}
	if placed.Total != 110.00 { // 100 subtotal + 10% tax
		t.Fatalf("expected total 110.00, got %v", placed.Total)
	}
	if len(placed.Items) != 1 || placed.Items[0].Quantity != 2 {
		t.Fatalf("unexpected order items: %+v", placed.Items)
	}

	// Checkout consumed the cart.
	if got := h.cart.TotalItems(); got != 0 {
		t.Fatalf("expected local cart reset, got %d items", got)
	}
	if err := h.cart.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := h.cart.TotalItems(); got != 0 {
		t.Fatalf("expected server cart cleared, got %d items", got)
	}

	// The response header rode back through the gateway and the feed
	// re-fetched synchronously.
	if h.feed.Unread() != 1 {
		t.Fatalf("expected 1 unread notification after checkout, got %d", h.feed.Unread())
	}
}

func TestTrackingAndCancellationOverHTTP(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if err := h.cart.AddToCart(ctx, "p-a", "", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	h.cart.ToggleSelectAll()
	placed, err := h.ords.Place(ctx, "user-1", h.cart, models.ShippingInfo{})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	view := order.NewView(h.ords, placed.ID)
	if err := view.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !view.CanCancel() {
		t.Fatalf("pending order must be cancellable")
	}
	steps := view.Steps()
	if !steps[0].Completed || steps[1].Completed {
		t.Fatalf("expected only the first milestone completed, got %+v", steps)
	}

	// Once the seller accepts, cancellation is off the table.
	h.srv.SetOrderStatus(placed.ID, models.OrderStatusAccepted)
	if err := view.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if view.CanCancel() {
		t.Fatalf("accepted order must not be cancellable")
	}
	if err := view.Cancel(ctx); !errors.Is(err, order.ErrNotCancellable) {
		t.Fatalf("expected ErrNotCancellable, got %v", err)
	}

	steps = view.Steps()
	if !steps[1].Completed {
		t.Fatalf("expected processing milestone completed, got %+v", steps)
	}
}

func TestCancelPendingOrderOverHTTP(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if err := h.cart.AddToCart(ctx, "p-a", "", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	h.cart.ToggleSelectAll()
	placed, err := h.ords.Place(ctx, "user-1", h.cart, models.ShippingInfo{})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	view := order.NewView(h.ords, placed.ID)
	if err := view.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := view.Cancel(ctx); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	o, _ := view.Order()
	if o.Status != models.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", o.Status)
	}

	// Server agrees.
	got, err := h.ords.Get(ctx, placed.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.OrderStatusCancelled {
		t.Fatalf("expected server-side cancelled, got %s", got.Status)
	}
}

func TestStatusTransitionRulesEnforcedByAPI(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	if err := h.cart.AddToCart(ctx, "p-a", "", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	h.cart.ToggleSelectAll()
	placed, err := h.ords.Place(ctx, "user-1", h.cart, models.ShippingInfo{})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	// pending -> delivered skips the machine and is refused.
	err = h.gw.Put(ctx, "/orders/status/"+placed.ID, models.UpdateOrderStatusRequest{Status: models.OrderStatusDelivered}, nil)
	var apiErr *gateway.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 409 {
		t.Fatalf("expected 409 for an illegal transition, got %v", err)
	}

	// The legal path works end to end.
	for _, status := range []string{
		models.OrderStatusAccepted,
		models.OrderStatusInTransit,
		models.OrderStatusDelivered,
	} {
		if err := h.gw.Put(ctx, "/orders/status/"+placed.ID, models.UpdateOrderStatusRequest{Status: status}, nil); err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
	}

	got, err := h.ords.Get(ctx, placed.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", got.Status)
	}
}

func TestTrackerStreamsLifecycleOverHTTP(t *testing.T) {
	t.Setenv("STOREFRONT_POLL_INTERVAL", "10ms")
	h := newHarness(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.cart.AddToCart(ctx, "p-a", "", 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	h.cart.ToggleSelectAll()
	placed, err := h.ords.Place(ctx, "user-1", h.cart, models.ShippingInfo{})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	tracker := order.NewTracker(order.NewView(h.ords, placed.ID), h.cfg.PollInterval)
	updates, err := tracker.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Advance the lifecycle one step for each snapshot the tracker
	// delivers; it should follow the order to delivered and stop.
	next := map[string]string{
		models.OrderStatusPending:   models.OrderStatusAccepted,
		models.OrderStatusAccepted:  models.OrderStatusInTransit,
		models.OrderStatusInTransit: models.OrderStatusDelivered,
	}
	var last string
	for o := range updates {
		last = o.Status
		if n, ok := next[o.Status]; ok {
			h.srv.SetOrderStatus(placed.ID, n)
		}
	}
	if last != models.OrderStatusDelivered {
		t.Fatalf("expected tracking to end at delivered, got %q", last)
	}
}

func TestCatalogLoadsOverHTTP(t *testing.T) {
	h := newHarness(t)

	food := "cat-1"
	h.srv.SeedCategories([]models.Category{
		{ID: "cat-1", Name: "Food", ParentID: nil},
		{ID: "cat-2", Name: "Snacks", ParentID: &food},
	})

	store := catalog.NewStore(catalog.NewHTTPAPI(h.gw))
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := store.MaxPrice(); got != 100 {
		t.Fatalf("expected maxPrice 100, got %v", got)
	}
	tree := store.CategoryTree()
	if len(tree) != 1 || len(tree[0].Children) != 1 {
		t.Fatalf("expected one root with one child, got %+v", tree)
	}
}
