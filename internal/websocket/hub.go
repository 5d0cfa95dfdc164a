package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/lenspick/lenspick-backend/pkg/logger"
)

// Client WebSocket 클라이언트 (알림 수신 세션)
type Client struct {
	Hub       *Hub
	Conn      *Conn
	ProfileID uint
	Send      chan []byte

	MessageCount  int       // 최근 1초간 받은 메시지 수
	LastResetTime time.Time // 마지막 카운터 리셋 시간
	RateMu        sync.Mutex
}

// Hub WebSocket 연결 관리자
// 프로필별 세션 목록을 유지하며 알림 메시지를 실시간으로 밀어준다
type Hub struct {
	// 등록된 클라이언트들 (ProfileID -> []*Client - 멀티 디바이스 지원)
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	push       chan *pushMessage

	mu sync.RWMutex
}

type pushMessage struct {
	ProfileID uint
	Message   []byte
}

// NewHub Hub 생성
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		push:       make(chan *pushMessage, 1024),
	}
}

// Run Hub 실행
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			// 멀티 디바이스 지원: 클라이언트 리스트에 추가
			h.clients[client.ProfileID] = append(h.clients[client.ProfileID], client)
			h.mu.Unlock()
			logger.Info("WebSocket client registered", map[string]interface{}{
				"profile_id":     client.ProfileID,
				"total_sessions": len(h.clients[client.ProfileID]),
			})

		case client := <-h.unregister:
			h.mu.Lock()
			// 같은 세션이 두 번 들어올 수 있음 (버퍼 가득참 정리 + ReadPump 종료)
			// Send는 리스트에서 실제로 제거한 쪽만 닫는다
			removed := false
			if clientList, ok := h.clients[client.ProfileID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					} else {
						removed = true
					}
				}

				if len(newList) == 0 {
					delete(h.clients, client.ProfileID)
				} else {
					h.clients[client.ProfileID] = newList
				}
			}
			if removed {
				close(client.Send)
			}
			h.mu.Unlock()
			if removed {
				logger.Info("WebSocket client unregistered", map[string]interface{}{
					"profile_id": client.ProfileID,
				})
			}

		case message := <-h.push:
			h.mu.RLock()
			// 멀티 디바이스: 모든 세션에 전송
			if clientList, ok := h.clients[message.ProfileID]; ok {
				for _, client := range clientList {
					select {
					case client.Send <- message.Message:
						// 전송 성공
					default:
						// Send 채널이 막혀있음 - 비동기로 정리
						go h.Unregister(client)
						logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
							"profile_id": message.ProfileID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// SendToProfile 특정 프로필의 모든 세션에 메시지 전송
// 수신자가 오프라인이면 조용히 버려진다 (알림은 DB에도 저장됨)
func (h *Hub) SendToProfile(profileID uint, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error("Failed to marshal push message", err, nil)
		return err
	}

	select {
	case h.push <- &pushMessage{ProfileID: profileID, Message: data}:
		return nil
	default:
		logger.Warn("Push channel full, message dropped", map[string]interface{}{
			"profile_id": profileID,
		})
		return nil // 메시지 손실을 허용 (주요 로직에 영향 없음)
	}
}

// Register 클라이언트 등록
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister 클라이언트 등록 해제
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// IsProfileOnline 프로필 온라인 여부 확인
func (h *Hub) IsProfileOnline(profileID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[profileID]
	return ok
}
