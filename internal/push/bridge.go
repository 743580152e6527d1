package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shenikar/rescue_dashboard/internal/config"
	"github.com/shenikar/rescue_dashboard/internal/metrics"
	"github.com/sirupsen/logrus"
)

const writeWait = 5 * time.Second

// Handler получает типизированное событие. Вызывается из горутины чтения соединения.
type Handler func(Event)

// Subscription идентифицирует подписку для последующей отписки
type Subscription struct {
	Event string
	ID    uuid.UUID
}

type subscriber struct {
	id      uuid.UUID
	handler Handler
}

// Bridge - единственное push-соединение с бэкендом.
// Ошибки соединения не выходят за пределы Connect/Disconnect, только логируются.
type Bridge struct {
	url               string
	reconnectAttempts int
	reconnectDelay    time.Duration
	timeout           time.Duration
	dialer            *websocket.Dialer
	logger            *logrus.Logger
	metrics           *metrics.Metrics

	mu       sync.Mutex
	handlers map[string][]subscriber
	cancel   context.CancelFunc
	done     chan struct{}

	writeMu   sync.Mutex
	connected atomic.Bool
}

// NewBridge создает мост к push-каналу по тому же базовому адресу, что и REST API
func NewBridge(cfg *config.Config, logger *logrus.Logger, m *metrics.Metrics) (*Bridge, error) {
	u, err := socketURL(cfg.APIURL)
	if err != nil {
		return nil, err
	}
	attempts := cfg.PushReconnectAttempts
	if attempts < 0 {
		attempts = 0
	}
	return &Bridge{
		url:               u,
		reconnectAttempts: attempts,
		reconnectDelay:    cfg.PushReconnectDelay,
		timeout:           cfg.PushTimeout,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.PushTimeout,
		},
		logger:   logger,
		metrics:  m,
		handlers: make(map[string][]subscriber),
	}, nil
}

// Connect запускает фоновое подключение и сразу возвращается.
// Повторный вызов при живом соединении или идущих попытках ничего не делает.
func (b *Bridge) Connect() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done != nil {
		select {
		case <-b.done:
		default:
			return
		}
		b.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	b.cancel = cancel
	b.done = done
	go b.run(ctx, done)
}

// Disconnect закрывает соединение и дожидается завершения фоновых горутин. Идемпотентен.
func (b *Bridge) Disconnect() {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.cancel, b.done = nil, nil
	b.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Connected сообщает, установлено ли соединение прямо сейчас
func (b *Bridge) Connected() bool {
	return b.connected.Load()
}

// Subscribe добавляет обработчик события. Обработчики одного события вызываются в порядке подписки.
func (b *Bridge) Subscribe(event string, h Handler) Subscription {
	sub := Subscription{Event: event, ID: uuid.New()}
	b.mu.Lock()
	b.handlers[event] = append(b.handlers[event], subscriber{id: sub.ID, handler: h})
	b.mu.Unlock()
	return sub
}

// Unsubscribe удаляет обработчик. Неизвестная подписка игнорируется.
func (b *Bridge) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[sub.Event]
	for i := range subs {
		if subs[i].id == sub.ID {
			b.handlers[sub.Event] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[sub.Event]) == 0 {
		delete(b.handlers, sub.Event)
	}
}

func (b *Bridge) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	log := b.logger.WithFields(logrus.Fields{"component": "push", "url": b.url})

	failures := 0
	for {
		established, err := b.session(ctx)
		if ctx.Err() != nil {
			log.Info("Push connection closed")
			return
		}
		if established {
			failures = 0
			log.WithError(err).Warn("Push connection lost")
		} else {
			failures++
			log.WithError(err).WithField("attempt", failures).Warn("Push connection failed")
		}
		if failures > b.reconnectAttempts {
			log.WithField("attempts", failures).Warn("Push reconnection attempts exhausted, staying disconnected")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(b.reconnectDelay):
		}
	}
}

// session держит одно соединение от установки до разрыва.
// established=true означает, что рукопожатие Socket.IO прошло успешно.
func (b *Bridge) session(ctx context.Context) (established bool, err error) {
	dialCtx, cancelDial := ctx, context.CancelFunc(func() {})
	if b.timeout > 0 {
		dialCtx, cancelDial = context.WithTimeout(ctx, b.timeout)
	}
	conn, resp, err := b.dialer.DialContext(dialCtx, b.url, nil)
	cancelDial()
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return false, fmt.Errorf("push: dial: %w", err)
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
			// ошибки при закрытии не важны
			_ = b.write(conn, disconnectFrame)
			_ = conn.Close()
		case <-stop:
		}
	}()
	defer func() {
		close(stop)
		wg.Wait()
		_ = conn.Close()
	}()

	hs, err := b.handshake(conn)
	if err != nil {
		return false, err
	}

	b.connected.Store(true)
	b.metrics.SetPushConnected(true)
	defer func() {
		b.connected.Store(false)
		b.metrics.SetPushConnected(false)
	}()
	b.logger.WithFields(logrus.Fields{"component": "push", "sid": hs.SID}).Info("Push connection established")

	return true, b.readLoop(conn, hs)
}

func (b *Bridge) handshake(conn *websocket.Conn) (handshake, error) {
	var hs handshake
	if b.timeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(b.timeout))
	}

	f, err := b.readFrame(conn)
	if err != nil {
		return hs, fmt.Errorf("push: handshake: %w", err)
	}
	if f.kind != frameOpen {
		return hs, fmt.Errorf("push: handshake: %w: expected open packet", errBadFrame)
	}
	if err := json.Unmarshal(f.data, &hs); err != nil {
		return hs, fmt.Errorf("push: handshake: %w", err)
	}
	if err := b.write(conn, connectFrame); err != nil {
		return hs, fmt.Errorf("push: handshake: %w", err)
	}

	for {
		f, err := b.readFrame(conn)
		if err != nil {
			return hs, fmt.Errorf("push: handshake: %w", err)
		}
		switch f.kind {
		case frameConnect:
			_ = conn.SetReadDeadline(time.Time{})
			return hs, nil
		case frameConnectError:
			return hs, fmt.Errorf("push: handshake: connection refused: %s", string(f.data))
		case framePing:
			if err := b.write(conn, pongFrame); err != nil {
				return hs, fmt.Errorf("push: handshake: %w", err)
			}
		}
	}
}

func (b *Bridge) readLoop(conn *websocket.Conn, hs handshake) error {
	log := b.logger.WithField("component", "push")
	// сервер шлет ping раз в pingInterval, молчание дольше pingInterval+pingTimeout означает разрыв
	var idle time.Duration
	if hs.PingInterval > 0 {
		idle = time.Duration(hs.PingInterval+hs.PingTimeout) * time.Millisecond
	}

	for {
		if idle > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(idle))
		}
		f, err := b.readFrame(conn)
		if err != nil {
			if errors.Is(err, errBadFrame) {
				log.WithError(err).Warn("Skipping malformed push frame")
				continue
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		switch f.kind {
		case framePing:
			if err := b.write(conn, pongFrame); err != nil {
				return err
			}
		case frameClose, frameDisconnect:
			return errors.New("push: server closed the connection")
		case frameEvent:
			b.dispatch(f.event, f.data)
		}
	}
}

func (b *Bridge) readFrame(conn *websocket.Conn) (frame, error) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return frame{}, err
	}
	return parseFrame(msg)
}

func (b *Bridge) write(conn *websocket.Conn, msg []byte) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, msg)
}

func (b *Bridge) dispatch(name string, data []byte) {
	log := b.logger.WithFields(logrus.Fields{"component": "push", "event": name})
	b.metrics.IncPushEvent(name)

	ev, err := DecodeEvent(name, data)
	if err != nil {
		if errors.Is(err, ErrUnknownEvent) {
			log.Debug("Ignoring unknown push event")
		} else {
			log.WithError(err).Warn("Failed to decode push event")
		}
		return
	}

	b.mu.Lock()
	subs := append([]subscriber(nil), b.handlers[name]...)
	b.mu.Unlock()

	for _, s := range subs {
		b.invoke(log, s.handler, ev)
	}
}

func (b *Bridge) invoke(log *logrus.Entry, h Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Push event handler panicked")
		}
	}()
	h(ev)
}
