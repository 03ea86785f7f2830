package services

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"ambulance-dispatch-service/config"
	"ambulance-dispatch-service/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterfaceMQTTDispatchService 定义MQTT调度消息服务接口
type InterfaceMQTTDispatchService interface {
	Connect() error
	Disconnect()
	SubscribeToTopics() error
	PublishRequestCreated(request *models.AmbulanceRequest) error
	PublishRequestAssigned(request *models.AmbulanceRequest) error
	PublishStatusChanged(request *models.AmbulanceRequest, oldStatus models.RequestStatus) error
}

// 主题常量
const (
	// 新请求广播主题，车载终端与急救员App订阅
	TopicRequestCreated = "dispatch/requests/created"

	// 按急救员推送的分配通知主题前缀，完整形如 dispatch/paramedics/{id}/assigned
	TopicParamedicPrefix = "dispatch/paramedics/"

	// 请求状态变更广播主题
	TopicStatusChanged = "dispatch/requests/status"

	// 车辆GPS上报主题，通配订阅 dispatch/vehicles/{id}/location
	TopicVehicleLocation = "dispatch/vehicles/+/location"
)

// 消息结构体定义
type (
	// DispatchMessage MQTT调度消息基础结构
	DispatchMessage struct {
		EventID   string         `json:"event_id"`
		Type      string         `json:"type"`
		Timestamp int64          `json:"timestamp"`
		Payload   map[string]any `json:"payload"`
	}

	// VehicleLocationMessage 车辆位置上报消息
	VehicleLocationMessage struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timestamp int64   `json:"timestamp"`
	}
)

// MQTTDispatchService 通过MQTT发布调度事件并接收车辆位置上报
type MQTTDispatchService struct {
	DB             *gorm.DB
	Config         *config.Config
	Client         mqtt.Client
	IsConnected    bool
	connectedMutex sync.RWMutex // 保护IsConnected字段的读写
	PublishMutex   sync.Mutex   // 用于保护MQTT消息发布
}

// NewMQTTDispatchService 创建新的MQTT调度服务
func NewMQTTDispatchService(db *gorm.DB, cfg *config.Config) InterfaceMQTTDispatchService {
	return &MQTTDispatchService{
		DB:     db,
		Config: cfg,
	}
}

// Connect 连接MQTT服务器
func (s *MQTTDispatchService) Connect() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.MQTTBrokerURL)
	opts.SetClientID(s.Config.MQTTClientID + "-" + uuid.New().String()[:8])
	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}
	if strings.HasPrefix(s.Config.MQTTBrokerURL, "ssl://") {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetConnectTimeout(10 * time.Second)

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		s.connectedMutex.Lock()
		s.IsConnected = true
		s.connectedMutex.Unlock()
		config.Info("MQTT已连接: %s", s.Config.MQTTBrokerURL)

		// 重连后需要重新订阅
		if err := s.SubscribeToTopics(); err != nil {
			config.Error("MQTT订阅失败: %v", err)
		}
	})
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		s.connectedMutex.Lock()
		s.IsConnected = false
		s.connectedMutex.Unlock()
		config.Warning("MQTT连接断开: %v", err)
	})

	s.Client = mqtt.NewClient(opts)
	if token := s.Client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("连接MQTT服务器失败: %w", token.Error())
	}

	return nil
}

// Disconnect 断开MQTT连接
func (s *MQTTDispatchService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
	s.connectedMutex.Lock()
	s.IsConnected = false
	s.connectedMutex.Unlock()
}

// SubscribeToTopics 订阅车辆位置上报主题
func (s *MQTTDispatchService) SubscribeToTopics() error {
	token := s.Client.Subscribe(TopicVehicleLocation, 1, s.handleVehicleLocation)
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

// handleVehicleLocation 处理车辆GPS上报，更新车辆最后位置
func (s *MQTTDispatchService) handleVehicleLocation(client mqtt.Client, msg mqtt.Message) {
	// 从主题 dispatch/vehicles/{id}/location 中解析车辆ID
	parts := strings.Split(msg.Topic(), "/")
	if len(parts) != 4 {
		config.Warning("无法解析车辆位置主题: %s", msg.Topic())
		return
	}
	vehicleID, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		config.Warning("无效的车辆ID: %s", parts[2])
		return
	}

	var location VehicleLocationMessage
	if err := json.Unmarshal(msg.Payload(), &location); err != nil {
		config.Warning("解析车辆位置消息失败: %v", err)
		return
	}

	result := s.DB.Model(&models.Ambulance{}).
		Where("id = ?", uint(vehicleID)).
		Updates(map[string]interface{}{
			"current_latitude":  location.Latitude,
			"current_longitude": location.Longitude,
		})
	if result.Error != nil {
		config.Error("更新车辆位置失败: %v", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		config.Warning("收到未登记车辆的位置上报: %d", vehicleID)
	}
}

// publish 发布一条调度消息
func (s *MQTTDispatchService) publish(topic, eventType string, payload map[string]any) error {
	s.connectedMutex.RLock()
	connected := s.IsConnected
	s.connectedMutex.RUnlock()
	if !connected {
		return fmt.Errorf("MQTT未连接，无法发布消息到 %s", topic)
	}

	message := DispatchMessage{
		EventID:   uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UnixMilli(),
		Payload:   payload,
	}

	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	s.PublishMutex.Lock()
	defer s.PublishMutex.Unlock()

	token := s.Client.Publish(topic, 1, false, data)
	if token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

// requestPayload 请求事件的公共字段
func requestPayload(request *models.AmbulanceRequest) map[string]any {
	payload := map[string]any{
		"request_id":     request.ID,
		"status":         request.Status,
		"priority":       request.Priority,
		"pickup_address": request.PickupAddress,
	}
	if request.PickupLatitude != nil && request.PickupLongitude != nil {
		payload["pickup_latitude"] = *request.PickupLatitude
		payload["pickup_longitude"] = *request.PickupLongitude
	}
	return payload
}

// PublishRequestCreated 广播新建的急救请求
func (s *MQTTDispatchService) PublishRequestCreated(request *models.AmbulanceRequest) error {
	return s.publish(TopicRequestCreated, "request_created", requestPayload(request))
}

// PublishRequestAssigned 向被分配的急救员推送分配通知
func (s *MQTTDispatchService) PublishRequestAssigned(request *models.AmbulanceRequest) error {
	if request.ParamedicID == nil {
		return fmt.Errorf("请求 %d 未分配急救员", request.ID)
	}

	topic := TopicParamedicPrefix + strconv.FormatUint(uint64(*request.ParamedicID), 10) + "/assigned"
	return s.publish(topic, "request_assigned", requestPayload(request))
}

// PublishStatusChanged 广播请求状态变更
func (s *MQTTDispatchService) PublishStatusChanged(request *models.AmbulanceRequest, oldStatus models.RequestStatus) error {
	payload := requestPayload(request)
	payload["old_status"] = oldStatus
	payload["new_status"] = request.Status
	return s.publish(TopicStatusChanged, "status_changed", payload)
}
