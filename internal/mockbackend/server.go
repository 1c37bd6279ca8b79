package mockbackend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rl1809/gallery-pos/internal/core/domain"
)

// Server is an in-memory stand-in for the remote gallery backend, good
// enough to develop and test a terminal against. It is a fixture set with
// just enough behavior (auth, order creation, idempotent replay), not a
// reimplementation of the real backend.
type Server struct {
	mu        sync.Mutex
	paintings []domain.CatalogItem
	customers []domain.Customer
	qrMethods []domain.QRMethod
	accounts  []account
	tokens    map[string]string // token -> account id
	orders    []domain.Order
	submitted map[string]string // idempotency key -> order id
	seq       int
}

type account struct {
	ID           string
	Username     string
	EmployeeName string
	Role         string
}

func NewServer() *Server {
	return &Server{
		paintings: []domain.CatalogItem{
			{ID: "p1", Name: "Chiều hoàng hôn", Artist: "Văn Cao", Category: "Phong cảnh", SellingPrice: vnd(12_000_000), Status: domain.ItemStatusAvailable},
			{ID: "p2", Name: "Mảnh ghép", Artist: "Bùi Xuân Phái", Category: "Trừu tượng", SellingPrice: vnd(25_500_000), Status: domain.ItemStatusAvailable},
			{ID: "p3", Name: "Phố cổ về đêm", Artist: "Bùi Xuân Phái", Category: "Phong cảnh", SellingPrice: vnd(450_000_000), Status: domain.ItemStatusAvailable},
			{ID: "p4", Name: "Dòng chảy", Artist: "Lê Phổ", Category: "Trừu tượng", SellingPrice: vnd(180_000_000), Status: domain.ItemStatusDiscontinued},
		},
		customers: []domain.Customer{
			{ID: "KH001", Name: "Anh Nam", Phone: "0987654321", Status: domain.CustomerStatusActive},
			{ID: "KH002", Name: "Chị Lan", Phone: "0912345678", Status: domain.CustomerStatusActive},
			{ID: "KH003", Name: "Anh Tuấn", Phone: "0934567890", Status: domain.CustomerStatusInactive},
		},
		qrMethods: []domain.QRMethod{
			{ID: "qr1", Name: "VietQR - MB Bank", QRCodeImageURL: "vietqr-mb.png"},
			{ID: "qr2", Name: "Momo", QRCodeImageURL: "momo.png"},
		},
		accounts: []account{
			{ID: "acc01", Username: "admin", EmployeeName: "Quang Đẹp Zai", Role: "Admin"},
			{ID: "acc02", Username: "nhanvien1", EmployeeName: "Nguyễn Văn A", Role: "Nhân viên"},
		},
		tokens:    make(map[string]string),
		submitted: make(map[string]string),
	}
}

func vnd(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/api/auth/login", s.login)
	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/api/paintings", s.listPaintings)
		r.Get("/api/customers", s.listCustomers)
		r.Get("/api/payment-methods/active-qr", s.listQRMethods)
		r.Get("/api/orders", s.listOrders)
		r.Post("/api/orders", s.createOrder)
	})
	return r
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusUnauthorized, errJSON("username and password are required"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acc := range s.accounts {
		if acc.Username == req.Username {
			token := uuid.NewString()
			s.tokens[token] = acc.ID
			writeJSON(w, http.StatusOK, map[string]any{
				"token": token,
				"user": map[string]string{
					"id":           acc.ID,
					"username":     acc.Username,
					"employeeName": acc.EmployeeName,
					"role":         acc.Role,
				},
			})
			return
		}
	}
	writeJSON(w, http.StatusUnauthorized, errJSON("unknown account"))
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		_, ok := s.tokens[token]
		s.mu.Unlock()
		if token == "" || !ok {
			writeJSON(w, http.StatusUnauthorized, errJSON("not logged in"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listPaintings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.paintings)
}

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.customers)
}

func (s *Server) listQRMethods(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.qrMethods)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.orders)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errJSON("invalid order payload"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Replay of an already-processed submission returns the original order.
	key := r.Header.Get("X-Idempotency-Key")
	if key != "" {
		if orderID, seen := s.submitted[key]; seen {
			writeJSON(w, http.StatusOK, map[string]string{"id": orderID})
			return
		}
	}

	customer := s.findCustomer(req.CustomerID)
	if customer == nil {
		writeJSON(w, http.StatusUnprocessableEntity, errJSON("customer not found"))
		return
	}
	if customer.Status != domain.CustomerStatusActive {
		writeJSON(w, http.StatusUnprocessableEntity, errJSON("customer is not active"))
		return
	}
	if len(req.Lines) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, errJSON("order has no lines"))
		return
	}

	total := decimal.Zero
	for _, line := range req.Lines {
		painting := s.findPainting(line.PaintingID)
		if painting == nil {
			writeJSON(w, http.StatusUnprocessableEntity, errJSON(fmt.Sprintf("unknown painting %s", line.PaintingID)))
			return
		}
		if !painting.Available() {
			writeJSON(w, http.StatusConflict, errJSON(fmt.Sprintf("painting %s is no longer available", line.PaintingID)))
			return
		}
		total = total.Add(line.Price)
	}

	for _, line := range req.Lines {
		s.findPainting(line.PaintingID).Status = domain.ItemStatusSold
	}

	s.seq++
	order := domain.Order{
		ID:         fmt.Sprintf("DH%03d", s.seq),
		CustomerID: req.CustomerID,
		UserID:     req.UserID,
		Lines:      req.Lines,
		Total:      total,
		Status:     domain.OrderStatusProcessing,
		CreatedAt:  time.Now(),
	}
	s.orders = append(s.orders, order)
	if key != "" {
		s.submitted[key] = order.ID
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": order.ID})
}

func (s *Server) findCustomer(id string) *domain.Customer {
	for i := range s.customers {
		if s.customers[i].ID == id {
			return &s.customers[i]
		}
	}
	return nil
}

func (s *Server) findPainting(id string) *domain.CatalogItem {
	for i := range s.paintings {
		if s.paintings[i].ID == id {
			return &s.paintings[i]
		}
	}
	return nil
}

// MarkSold flips a painting's status from test code, simulating a sale that
// happened on another terminal between selection and submission.
func (s *Server) MarkSold(paintingID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.findPainting(paintingID); p != nil {
		p.Status = domain.ItemStatusSold
	}
}

// Orders returns a snapshot of the orders created so far.
func (s *Server) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func errJSON(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
