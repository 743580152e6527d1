package push

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Типы пакетов Engine.IO v4
const (
	eioOpen    = '0'
	eioClose   = '1'
	eioPing    = '2'
	eioPong    = '3'
	eioMessage = '4'
	eioNoop    = '6'
)

// Типы пакетов Socket.IO внутри сообщения Engine.IO
const (
	sioConnect      = '0'
	sioDisconnect   = '1'
	sioEvent        = '2'
	sioConnectError = '4'
)

var (
	pongFrame       = []byte{eioPong}
	connectFrame    = []byte{eioMessage, sioConnect}
	disconnectFrame = []byte{eioMessage, sioDisconnect}
)

var errBadFrame = errors.New("push: malformed frame")

type frameKind int

const (
	frameIgnored frameKind = iota
	frameOpen
	frameClose
	framePing
	frameConnect
	frameConnectError
	frameDisconnect
	frameEvent
)

type frame struct {
	kind  frameKind
	event string
	data  json.RawMessage
}

// handshake - содержимое пакета open
type handshake struct {
	SID          string `json:"sid"`
	PingInterval int    `json:"pingInterval"`
	PingTimeout  int    `json:"pingTimeout"`
}

func parseFrame(msg []byte) (frame, error) {
	if len(msg) == 0 {
		return frame{}, errBadFrame
	}
	switch msg[0] {
	case eioOpen:
		return frame{kind: frameOpen, data: json.RawMessage(msg[1:])}, nil
	case eioClose:
		return frame{kind: frameClose}, nil
	case eioPing:
		return frame{kind: framePing}, nil
	case eioPong, eioNoop:
		return frame{kind: frameIgnored}, nil
	case eioMessage:
		return parseSocketPacket(msg[1:])
	}
	return frame{}, fmt.Errorf("%w: unknown engine packet %q", errBadFrame, msg[0])
}

func parseSocketPacket(msg []byte) (frame, error) {
	if len(msg) == 0 {
		return frame{}, errBadFrame
	}
	kind := msg[0]
	body := skipNamespace(msg[1:])
	switch kind {
	case sioConnect:
		return frame{kind: frameConnect, data: json.RawMessage(body)}, nil
	case sioDisconnect:
		return frame{kind: frameDisconnect}, nil
	case sioConnectError:
		return frame{kind: frameConnectError, data: json.RawMessage(body)}, nil
	case sioEvent:
		// идентификатор ack перед массивом аргументов
		body = strings.TrimLeft(body, "0123456789")
		var args []json.RawMessage
		if err := json.Unmarshal([]byte(body), &args); err != nil || len(args) == 0 {
			return frame{}, fmt.Errorf("%w: event arguments", errBadFrame)
		}
		var name string
		if err := json.Unmarshal(args[0], &name); err != nil || name == "" {
			return frame{}, fmt.Errorf("%w: event name", errBadFrame)
		}
		f := frame{kind: frameEvent, event: name}
		if len(args) > 1 {
			f.data = args[1]
		}
		return f, nil
	}
	return frame{kind: frameIgnored}, nil
}

// skipNamespace отбрасывает префикс "/ns," у пакетов не корневого пространства имен
func skipNamespace(b []byte) string {
	s := string(b)
	if strings.HasPrefix(s, "/") {
		if i := strings.IndexByte(s, ','); i >= 0 {
			return s[i+1:]
		}
		return ""
	}
	return s
}

// socketURL строит адрес websocket-транспорта Engine.IO из базового адреса API
func socketURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("push: invalid base url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("push: unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/socket.io/"
	u.RawQuery = url.Values{"EIO": {"4"}, "transport": {"websocket"}}.Encode()
	return u.String(), nil
}
