package main

import (
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"serenityspa/internal/database"
	"serenityspa/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "serenityspa.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM vouchers")
	db.Exec("DELETE FROM products")
	db.Exec("DELETE FROM spa_services")
	db.Exec("DELETE FROM branches")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := []domain.User{
		{Email: "admin@example.com", PasswordHash: string(hash), Role: domain.RoleAdmin, Name: "Admin User", JoinDate: time.Now()},
		{Email: "manager@example.com", PasswordHash: string(hash), Role: domain.RoleManager, Name: "Manager User", JoinDate: time.Now()},
		{Email: "user@example.com", PasswordHash: string(hash), Role: domain.RoleCustomer, Name: "Nguyễn Văn A", Phone: "0901234567", JoinDate: time.Now()},
	}
	for i := range users {
		db.Create(&users[i])
	}
	log.Println("Demo accounts created (password: password)")

	// ================== BRANCHES ==================
	log.Println("Creating branches...")

	branches := []domain.Branch{
		{Name: "SerenitySpa Quận 1", Address: "123 Đường Nguyễn Huệ, Phường Bến Nghé, Quận 1, TP.HCM", Phone: "028 1234 5678", OpenTime: "09:00", CloseTime: "21:00", ImageURL: "/branches/branch-1.jpg"},
		{Name: "SerenitySpa Quận 3", Address: "456 Võ Văn Tần, Phường 5, Quận 3, TP.HCM", Phone: "028 2345 6789", OpenTime: "09:00", CloseTime: "21:00", ImageURL: "/branches/branch-2.jpg"},
		{Name: "SerenitySpa Thảo Điền", Address: "789 Xuân Thủy, Phường Thảo Điền, Quận 2, TP.HCM", Phone: "028 3456 7890", OpenTime: "09:00", CloseTime: "21:00", ImageURL: "/branches/branch-3.jpg"},
		{Name: "SerenitySpa Phú Mỹ Hưng", Address: "101 Nguyễn Lương Bằng, Phú Mỹ Hưng, Quận 7, TP.HCM", Phone: "028 4567 8901", OpenTime: "09:00", CloseTime: "21:00", ImageURL: "/branches/branch-4.jpg"},
		{Name: "SerenitySpa Hà Nội", Address: "202 Đường Lý Thường Kiệt, Quận Hoàn Kiếm, Hà Nội", Phone: "024 5678 9012", OpenTime: "09:00", CloseTime: "21:00", ImageURL: "/branches/branch-5.jpg"},
	}
	for i := range branches {
		db.Create(&branches[i])
	}

	// Manager runs the first branch.
	branches[0].ManagerID = &users[1].ID
	db.Save(&branches[0])

	// ================== SPA SERVICES ==================
	log.Println("Creating spa services...")

	services := []domain.SpaService{
		{Slug: "swedish-massage", Name: "Swedish Massage", Description: "Our signature massage uses gentle to firm pressure to release tension, ease muscle pain, and promote relaxation.", DurationMin: 60, Price: 85, Category: "massage"},
		{Slug: "deep-tissue-massage", Name: "Deep Tissue Massage", Description: "Targets deeper layers of muscle and connective tissue to address chronic pain and tension.", DurationMin: 60, Price: 95, Category: "massage"},
		{Slug: "hot-stone-therapy", Name: "Hot Stone Therapy", Description: "Smooth, heated basalt stones and aromatic oils relieve deep muscle tension and improve circulation.", DurationMin: 90, Price: 110, Category: "massage"},
		{Slug: "aromatherapy-massage", Name: "Aromatherapy Massage", Description: "Essential oils are used to enhance the therapeutic benefits of massage, promoting relaxation and mood improvement.", DurationMin: 60, Price: 90, Category: "massage"},
		{Slug: "hydrating-facial", Name: "Hydrating Facial", Description: "Restore moisture and radiance to dry, dehydrated skin with our nourishing facial treatment.", DurationMin: 75, Price: 95, Category: "facial"},
		{Slug: "anti-aging-facial", Name: "Anti-Aging Facial", Description: "Target fine lines and wrinkles with advanced ingredients that promote collagen production and skin elasticity.", DurationMin: 90, Price: 120, Category: "facial"},
		{Slug: "purifying-facial", Name: "Purifying Facial", Description: "Deep cleanse and detoxify congested skin to clear blemishes and prevent future breakouts.", DurationMin: 60, Price: 90, Category: "facial"},
		{Slug: "body-scrub-wrap", Name: "Body Scrub & Wrap", Description: "Exfoliate and nourish the skin with our luxurious scrub, followed by a hydrating body wrap.", DurationMin: 90, Price: 120, Category: "body"},
		{Slug: "deluxe-manicure-pedicure", Name: "Deluxe Manicure & Pedicure", Description: "Pamper your hands and feet with our deluxe treatment including exfoliation, masks, and massage.", DurationMin: 90, Price: 80, Category: "beauty"},
	}
	for i := range services {
		db.Create(&services[i])
	}

	// ================== PRODUCTS ==================
	log.Println("Creating products...")

	products := []domain.Product{
		{Slug: "tinh-dau-massage-oai-huong", Name: "Tinh dầu massage Oải Hương", Description: "Tinh dầu oải hương nguyên chất cho liệu trình massage thư giãn.", Price: 250000, Category: "oils", InStock: true},
		{Slug: "bo-da-nong-massage", Name: "Bộ đá nóng massage", Description: "Bộ đá bazan tự nhiên dùng cho liệu pháp đá nóng.", Price: 750000, Category: "tools", InStock: true},
		{Slug: "tinh-dau-bac-ha", Name: "Tinh dầu Bạc Hà", Description: "Tinh dầu bạc hà mát lạnh, sảng khoái.", Price: 220000, Category: "oils", InStock: true},
		{Slug: "kem-duong-da-mat-aloe-vera", Name: "Kem dưỡng da mặt Aloe Vera", Description: "Kem dưỡng ẩm chiết xuất nha đam dịu nhẹ.", Price: 350000, Category: "skincare", InStock: true},
		{Slug: "mat-na-collagen", Name: "Mặt nạ Collagen", Description: "Mặt nạ bổ sung collagen giúp da căng mịn.", Price: 80000, Category: "skincare", InStock: true},
		{Slug: "bo-trang-diem-tu-nhien", Name: "Bộ trang điểm tự nhiên", Description: "Bộ trang điểm với thành phần thiên nhiên an toàn.", Price: 1200000, Category: "makeup", InStock: true},
		{Slug: "nen-thom-hoa-nhai", Name: "Nến thơm Hoa Nhài", Description: "Nến thơm hương hoa nhài cho không gian thư giãn.", Price: 180000, Category: "candles", InStock: true},
		{Slug: "bo-cham-soc-toc-argan", Name: "Bộ chăm sóc tóc Argan", Description: "Dầu gội và dầu xả chiết xuất argan phục hồi tóc hư tổn.", Price: 420000, Category: "haircare", InStock: true},
		{Slug: "khan-choang-spa", Name: "Khăn choàng spa", Description: "Khăn choàng cotton cao cấp chuẩn spa.", Price: 300000, Category: "accessories", InStock: false},
	}
	for i := range products {
		db.Create(&products[i])
	}

	// ================== VOUCHERS ==================
	log.Println("Creating vouchers...")

	nextYear := time.Now().AddDate(1, 0, 0)
	lastSummer := time.Date(time.Now().Year()-1, time.August, 31, 0, 0, 0, 0, time.UTC)

	vouchers := []domain.Voucher{
		{
			Code: "WELCOME20", Title: "Chào mừng thành viên mới", Description: "Giảm 20% cho lần đặt lịch đầu tiên",
			DiscountType: domain.DiscountPercentage, DiscountValue: 20, ExpiryDate: nextYear,
			IsSpecial: true, ApplicableFor: domain.ScopeAll, Status: domain.VoucherActive,
			Terms: []string{"Áp dụng cho thành viên mới", "Chỉ áp dụng cho lần đặt lịch đầu tiên", "Không áp dụng cùng các khuyến mãi khác"},
		},
		{
			Code: "BDAY30", Title: "Ưu đãi sinh nhật", Description: "Giảm 30% cho tất cả dịch vụ trong tháng sinh nhật",
			DiscountType: domain.DiscountPercentage, DiscountValue: 30, ExpiryDate: nextYear,
			IsSpecial: true, ApplicableFor: domain.ScopeServices, Status: domain.VoucherActive,
			Terms: []string{"Áp dụng trong tháng sinh nhật", "Cần xuất trình CMND/CCCD để xác minh ngày sinh", "Chỉ áp dụng cho dịch vụ"},
		},
		{
			Code: "RELAX50", Title: "Giảm nửa giá cho Massage", Description: "Giảm 50% cho tất cả dịch vụ massage",
			DiscountType: domain.DiscountPercentage, DiscountValue: 50, MinPurchase: 1000000, ExpiryDate: nextYear,
			IsSpecial: true, ApplicableFor: domain.ScopeServices, Status: domain.VoucherActive,
			Terms: []string{"Chỉ áp dụng cho dịch vụ massage", "Áp dụng cho hóa đơn từ 1.000.000đ", "Không áp dụng vào cuối tuần và ngày lễ"},
		},
		{
			Code: "SKINCARE15", Title: "Giảm giá sản phẩm chăm sóc da", Description: "Giảm 15% cho tất cả sản phẩm chăm sóc da",
			DiscountType: domain.DiscountPercentage, DiscountValue: 15, ExpiryDate: nextYear,
			IsSpecial: true, ApplicableFor: domain.ScopeProducts, Status: domain.VoucherActive,
			Terms: []string{"Chỉ áp dụng cho sản phẩm chăm sóc da", "Không áp dụng cùng các khuyến mãi khác"},
		},
		{
			Code: "SUMMER100K", Title: "Ưu đãi mùa hè", Description: "Giảm 100.000đ cho hóa đơn từ 500.000đ",
			DiscountType: domain.DiscountFixed, DiscountValue: 100000, MinPurchase: 500000, ExpiryDate: lastSummer,
			IsSpecial: false, ApplicableFor: domain.ScopeAll, Status: domain.VoucherExpired,
			Terms: []string{"Áp dụng cho hóa đơn từ 500.000đ", "Không áp dụng cùng các khuyến mãi khác"},
		},
	}
	for i := range vouchers {
		db.Create(&vouchers[i])
	}

	log.Println("Seed complete")
}
