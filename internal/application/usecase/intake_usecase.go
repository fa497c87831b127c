package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ngvyshop/chatorder-api/internal/application/dto"
	"github.com/ngvyshop/chatorder-api/internal/application/ports"
	"github.com/ngvyshop/chatorder-api/internal/domain"
	"github.com/ngvyshop/chatorder-api/internal/domain/entity"
	"github.com/ngvyshop/chatorder-api/internal/domain/repository"
)

const (
	// Texts shorter than this many words are customer-name replies, not orders.
	orderMessageMinWords = 4
	// How far back an image attachment looks for a preceding name text.
	imageNameWindow = 5 * time.Minute
	// Admin command that maps a platform account to a conversation sender.
	createUserCommand = "create user"
)

// IntakeTxRunner runs the all-or-nothing insertion of one extracted message's
// order rows, with product resolution bound to the same transaction.
type IntakeTxRunner interface {
	Run(ctx context.Context, fn func(orders repository.OrderRepository, products repository.ProductRepository) error) error
}

// IntakeConfig tunes the classifier.
type IntakeConfig struct {
	// PendingNameMaxAge bounds how old a pending image order may be and still
	// be renamed by a short reply; zero means unlimited lookback.
	PendingNameMaxAge time.Duration
	// ExtractTimeout caps one oracle call.
	ExtractTimeout time.Duration
}

// IntakeUseCase classifies one inbound messaging event and turns it into zero
// or more order mutations: a customer-name correction, extracted text orders,
// or image orders.
type IntakeUseCase struct {
	messages  repository.MessageRepository
	orders    repository.OrderRepository
	accounts  repository.AccountRepository
	tx        IntakeTxRunner
	extractor ports.OrderExtractor
	events    ports.OrderEventPublisher // nil = disabled
	cfg       IntakeConfig
	log       zerolog.Logger
}

// NewIntakeUseCase wires the classifier.
func NewIntakeUseCase(
	messages repository.MessageRepository,
	orders repository.OrderRepository,
	accounts repository.AccountRepository,
	tx IntakeTxRunner,
	extractor ports.OrderExtractor,
	events ports.OrderEventPublisher,
	cfg IntakeConfig,
	log zerolog.Logger,
) *IntakeUseCase {
	if cfg.ExtractTimeout <= 0 {
		cfg.ExtractTimeout = 30 * time.Second
	}
	return &IntakeUseCase{
		messages:  messages,
		orders:    orders,
		accounts:  accounts,
		tx:        tx,
		extractor: extractor,
		events:    events,
		cfg:       cfg,
		log:       log,
	}
}

// HandleEvent records the inbound message and applies the classification
// rules in order of precedence: admin command, short-text name reply, order
// text, image attachments. Echo events are recorded but never classified.
func (uc *IntakeUseCase) HandleEvent(ctx context.Context, ev dto.MessagingEvent) error {
	if ev.Message == nil {
		return nil
	}

	msg := uc.recordMessage(ev)
	if err := uc.messages.Insert(msg); err != nil {
		return fmt.Errorf("store inbound message: %w", err)
	}

	if msg.IsEcho {
		return nil
	}

	text := strings.TrimSpace(msg.Text)

	if strings.HasPrefix(strings.ToLower(text), createUserCommand) {
		return uc.handleCreateUser(msg.SenderID, text)
	}

	if text != "" {
		if err := uc.handleText(ctx, msg, text); err != nil {
			return err
		}
	}

	for _, att := range msg.Attachments {
		if att.Type != "image" {
			continue
		}
		if err := uc.handleImage(ctx, msg, att.URL); err != nil {
			return err
		}
	}
	return nil
}

// recordMessage maps the wire event to the immutable message row.
func (uc *IntakeUseCase) recordMessage(ev dto.MessagingEvent) *entity.Message {
	msg := &entity.Message{
		ID:          uuid.New().String(),
		SenderID:    ev.Sender.ID,
		RecipientID: ev.Recipient.ID,
		Timestamp:   ev.Timestamp,
		CreatedAt:   time.Now().UTC(),
	}
	if ev.Conversation != nil {
		msg.ConversationID = ev.Conversation.ID
	}
	m := ev.Message
	msg.Text = m.Text
	msg.PlatformMsgID = m.MID
	msg.Seq = m.Seq
	msg.IsEcho = m.IsEcho
	if m.QuickReply != nil {
		msg.QuickReply = m.QuickReply.Payload
	}
	for _, a := range m.Attachments {
		msg.Attachments = append(msg.Attachments, entity.Attachment{Type: a.Type, URL: a.Payload.URL})
	}
	return msg
}

// handleCreateUser maps the platform id at the end of the command to this
// conversation's sender, bypassing all order logic.
func (uc *IntakeUseCase) handleCreateUser(senderID, text string) error {
	parts := strings.Fields(text)
	if len(parts) < 3 {
		return fmt.Errorf("%w: create user command needs a platform id", domain.ErrInvalidInput)
	}
	platformID := parts[len(parts)-1]
	ok, err := uc.accounts.UpdateMappedSender(platformID, senderID)
	if err != nil {
		return fmt.Errorf("map sender for account %s: %w", platformID, err)
	}
	if !ok {
		uc.log.Warn().Str("platform_id", platformID).Msg("create user: no such account")
		return nil
	}
	uc.log.Info().Str("platform_id", platformID).Str("sender_id", senderID).Msg("mapped account to sender")
	return nil
}

// handleText applies rules 2 and 3: short texts rename the latest pending
// image order, longer texts go through the extractor.
func (uc *IntakeUseCase) handleText(ctx context.Context, msg *entity.Message, text string) error {
	words := len(strings.Fields(text))

	if words < orderMessageMinWords {
		var notBefore *time.Time
		if uc.cfg.PendingNameMaxAge > 0 {
			t := time.Now().UTC().Add(-uc.cfg.PendingNameMaxAge)
			notBefore = &t
		}
		pending, err := uc.orders.LatestPendingNameBySender(msg.SenderID, notBefore)
		if err != nil {
			return fmt.Errorf("lookup pending order: %w", err)
		}
		if pending != nil {
			if err := uc.orders.SetCustomerName(pending.ID, text, entity.NameStatusUpdated); err != nil {
				return fmt.Errorf("set customer name on order %s: %w", pending.ID, err)
			}
			uc.log.Info().Str("order_id", pending.ID).Str("customer_name", text).Msg("resolved pending customer name")
		}
		return nil
	}

	return uc.extractOrders(ctx, msg, text)
}

// extractOrders calls the oracle and persists one order row per
// (customer, item) pair, all-or-nothing, under one shared group id.
func (uc *IntakeUseCase) extractOrders(ctx context.Context, msg *entity.Message, text string) error {
	callCtx, cancel := context.WithTimeout(ctx, uc.cfg.ExtractTimeout)
	defer cancel()

	structured, err := uc.extractor.ParseOrderMessage(callCtx, text)
	if err != nil {
		uc.log.Error().Err(err).Str("sender_id", msg.SenderID).Msg("order extraction failed")
		return fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	if err := structured.Validate(); err != nil {
		uc.log.Error().Err(err).Str("sender_id", msg.SenderID).Msg("oracle response failed schema validation")
		return fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	groupID := fmt.Sprintf("order_%d", time.Now().Unix())
	now := time.Now().UTC()
	created := make([]*entity.Order, 0, structured.TotalQuantity())

	err = uc.tx.Run(ctx, func(orders repository.OrderRepository, products repository.ProductRepository) error {
		product, err := resolveProduct(products, structured.ProductName, now)
		if err != nil {
			return err
		}
		for _, co := range structured.Orders {
			for _, item := range co.Items {
				qty := item.Quantity
				if qty <= 0 {
					qty = 1
				}
				o := &entity.Order{
					ID:                 uuid.New().String(),
					SenderID:           msg.SenderID,
					CustomerName:       co.CustomerName,
					CustomerNameStatus: entity.NameStatusUpdated,
					ItemName:           structured.ProductName,
					Color:              item.Color,
					Quantity:           qty,
					Price:              product.Price,
					ImageURL:           product.ImageURL,
					Status:             domain.StatusPickup,
					OrderGroupID:       groupID,
					BillingStatus:      entity.BillingUnpaid,
					MessageID:          msg.ID,
					CreatedAt:          now,
					UpdatedAt:          now,
				}
				if err := orders.Insert(o); err != nil {
					return fmt.Errorf("insert order for %s: %w", co.CustomerName, err)
				}
				created = append(created, o)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("persist extracted orders: %w", err)
	}

	total := structured.TotalQuantity()
	uc.log.Info().
		Str("group_id", groupID).
		Str("product", structured.ProductName).
		Int("orders", len(created)).
		Int("total_quantity", total).
		Msg("created orders from message")

	uc.publishCreated(ctx, created)
	return nil
}

// handleImage applies rule 4: one order per image, with the customer name
// adopted from a recent short text when one exists.
func (uc *IntakeUseCase) handleImage(ctx context.Context, msg *entity.Message, imageURL string) error {
	now := time.Now().UTC()

	customerName := ""
	nameStatus := entity.NameStatusPending
	recent, err := uc.messages.LatestTextBySender(msg.SenderID, now.Add(-imageNameWindow))
	if err != nil {
		return fmt.Errorf("lookup recent text: %w", err)
	}
	if recent != nil && recent.WordCount() <= orderMessageMinWords {
		customerName = recent.Text
		nameStatus = entity.NameStatusUpdated
	}

	o := &entity.Order{
		ID:                 uuid.New().String(),
		SenderID:           msg.SenderID,
		CustomerName:       customerName,
		CustomerNameStatus: nameStatus,
		ItemName:           fmt.Sprintf("%s %s", entity.ImageOrderPrefix, now.Format("20060102150405")),
		Quantity:           1,
		Price:              decimal.Zero,
		ImageURL:           imageURL,
		Status:             domain.StatusPickup,
		BillingStatus:      entity.BillingUnpaid,
		MessageID:          msg.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.orders.Insert(o); err != nil {
		return fmt.Errorf("insert image order: %w", err)
	}
	uc.log.Info().Str("order_id", o.ID).Str("name_status", nameStatus).Msg("created image order")

	uc.publishCreated(ctx, []*entity.Order{o})
	return nil
}

func (uc *IntakeUseCase) publishCreated(ctx context.Context, orders []*entity.Order) {
	if uc.events == nil {
		return
	}
	for _, o := range orders {
		if err := uc.events.OrderCreated(ctx, o); err != nil {
			uc.log.Warn().Err(err).Str("order_id", o.ID).Msg("publish order.created failed")
		}
	}
}
