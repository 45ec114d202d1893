package wa

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/mdp/qrterminal"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	walog "go.mau.fi/whatsmeow/util/log"
	_ "modernc.org/sqlite"
)

// Message is an incoming text message, stripped down to what command
// handling needs.
type Message struct {
	Chat     types.JID
	Sender   types.JID
	PushName string
	Text     string
}

type MessageHandler func(ctx context.Context, msg Message)

type ReplyOptions struct {
	DelayMin   time.Duration
	DelayMax   time.Duration // 0 = use DelayMin as fixed
	ShowTyping bool
}

type Service struct {
	client  *whatsmeow.Client
	dbPath  string
	log     walog.Logger
	reply   ReplyOptions
	handler MessageHandler
}

func NewService(dbPath string, logger walog.Logger, reply ReplyOptions) *Service {
	return &Service{
		dbPath: dbPath,
		log:    logger,
		reply:  reply,
	}
}

func (s *Service) Initialize(ctx context.Context) error {
	// whatsmeow opens its own connection to the same file; WAL mode sticks to
	// the file once the tracker enables it.
	dbAddress := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", s.dbPath)
	container, err := sqlstore.New(ctx, "sqlite", dbAddress, s.log.Sub("Database"))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	devices, err := container.GetAllDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to get devices: %w", err)
	}

	var device *store.Device
	if len(devices) > 0 {
		device = devices[0]
	} else {
		device = container.NewDevice()
	}

	s.client = whatsmeow.NewClient(device, s.log.Sub("Client"))
	s.client.AddEventHandler(s.dispatch)

	return nil
}

func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.handler = handler
}

func (s *Service) dispatch(evt interface{}) {
	v, ok := evt.(*events.Message)
	if !ok || s.handler == nil || v.Info.IsFromMe {
		return
	}

	text := ""
	if v.Message.GetConversation() != "" {
		text = v.Message.GetConversation()
	} else if ext := v.Message.GetExtendedTextMessage(); ext != nil {
		text = ext.GetText()
	}
	if text == "" {
		return
	}

	go s.handler(context.Background(), Message{
		Chat:     v.Info.Chat,
		Sender:   v.Info.Sender,
		PushName: v.Info.PushName,
		Text:     text,
	})
}

// Reply sends text to chat after the configured human-like delay.
func (s *Service) Reply(ctx context.Context, chat types.JID, text string) error {
	delay := s.reply.DelayMin
	if s.reply.DelayMax > s.reply.DelayMin {
		delay += time.Duration(rand.Int63n(int64(s.reply.DelayMax - s.reply.DelayMin + time.Millisecond)))
	}

	if delay > 0 {
		if s.reply.ShowTyping {
			_ = s.client.SendChatPresence(ctx, chat, types.ChatPresenceComposing, types.ChatPresenceMediaText)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}

		if s.reply.ShowTyping {
			_ = s.client.SendChatPresence(ctx, chat, types.ChatPresencePaused, types.ChatPresenceMediaText)
		}
	}

	_, err := s.client.SendMessage(ctx, chat, &waE2E.Message{Conversation: &text})
	return err
}

func (s *Service) Connect() error {
	if s.client == nil {
		return fmt.Errorf("client not initialized")
	}
	if s.client.IsConnected() {
		return nil
	}
	return s.client.Connect()
}

func (s *Service) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
	}
}

func (s *Service) IsLoggedIn() bool {
	return s.client.Store.ID != nil
}

// Pair links the bot to phone with a pairing code instead of a QR scan.
func (s *Service) Pair(ctx context.Context, phone string) (string, error) {
	if s.IsLoggedIn() {
		return "", fmt.Errorf("already logged in")
	}
	if !s.client.IsConnected() {
		return "", fmt.Errorf("client not connected")
	}

	return s.client.PairPhone(ctx, phone, true, whatsmeow.PairClientChrome, "Chrome (Linux)")
}

// PrintQR connects and renders login QR codes on stdout until pairing ends.
// The QR channel must be requested before connecting.
func (s *Service) PrintQR(ctx context.Context) error {
	if s.IsLoggedIn() {
		return nil
	}

	qrChan, err := s.client.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("get qr channel: %w", err)
	}
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("connect for qr: %w", err)
	}

	for evt := range qrChan {
		if evt.Event == "code" {
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
		} else {
			s.log.Infof("Login event: %s", evt.Event)
		}
	}
	return nil
}
