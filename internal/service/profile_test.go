package service

import (
	"context"
	"net/http"
	"testing"

	"FanPulse/internal/apperr"
	"FanPulse/internal/model"
	"FanPulse/internal/repository"

	"gorm.io/gorm"
)

func newProfileService(t *testing.T) (*ProfileService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewProfileService(db, repository.NewProfileRepository(db),
		repository.NewCommentRepository(db), newTestLogger())
	return svc, db
}

func TestRegisterCreatesProfileAndClubStats(t *testing.T) {
	svc, db := newProfileService(t)
	a := createClub(t, db, "Arsenal")
	c := createClub(t, db, "Chelsea")

	profile, err := svc.Register(context.Background(), "alice", "secret", []uint64{a.ID, c.ID})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if profile.ProfileUUID == "" {
		t.Fatal("应生成对外UUID")
	}
	if profile.ActiveClubID == nil || *profile.ActiveClubID != a.ID {
		t.Fatalf("主队应默认为第一个俱乐部: %v", profile.ActiveClubID)
	}
	if len(profile.SupportedClubs) != 2 {
		t.Fatalf("应支持2个俱乐部，得到 %d", len(profile.SupportedClubs))
	}
	var count int64
	if err := db.Model(&model.ClubStats{}).Where("profile_id = ?", profile.ID).Count(&count).Error; err != nil {
		t.Fatalf("数ClubStats失败: %v", err)
	}
	if count != 2 {
		t.Fatalf("每个俱乐部应有一条ClubStats，得到 %d", count)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, db := newProfileService(t)
	a := createClub(t, db, "Arsenal")
	b := createClub(t, db, "Chelsea")
	c := createClub(t, db, "Spurs")
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "pw", nil); err == nil || apperr.Status(err) != http.StatusBadRequest {
		t.Fatalf("空用户名应返回400，得到 %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "pw", []uint64{a.ID, b.ID, c.ID}); err == nil || apperr.Status(err) != http.StatusBadRequest {
		t.Fatalf("超过2个俱乐部应返回400，得到 %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "pw", []uint64{a.ID}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "pw2", []uint64{b.ID}); err == nil || apperr.Status(err) != http.StatusConflict {
		t.Fatalf("重名应返回409，得到 %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, db := newProfileService(t)
	a := createClub(t, db, "Arsenal")
	registered, err := svc.Register(context.Background(), "alice", "secret", []uint64{a.ID})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	profile, err := svc.Login(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if profile.ProfileUUID != registered.ProfileUUID {
		t.Fatalf("登录应返回同一档案: %s vs %s", profile.ProfileUUID, registered.ProfileUUID)
	}

	if _, err := svc.Login(context.Background(), "alice", "wrong"); err == nil || apperr.Status(err) != http.StatusUnauthorized {
		t.Fatalf("错误密码应返回401，得到 %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody", "secret"); err == nil || apperr.Status(err) != http.StatusUnauthorized {
		t.Fatalf("未知用户应返回401，得到 %v", err)
	}
}

func TestGetByUUIDAuthRequired(t *testing.T) {
	svc, _ := newProfileService(t)
	ctx := context.Background()
	if _, err := svc.GetByUUID(ctx, ""); err == nil || apperr.Status(err) != http.StatusUnauthorized {
		t.Fatalf("缺失身份应返回401，得到 %v", err)
	}
	if _, err := svc.GetByUUID(ctx, "nope"); err == nil || apperr.Status(err) != http.StatusUnauthorized {
		t.Fatalf("未知身份应返回401，得到 %v", err)
	}
}

func TestSwitchClubOnlySupported(t *testing.T) {
	svc, db := newProfileService(t)
	a := createClub(t, db, "Arsenal")
	b := createClub(t, db, "Chelsea")
	outsider := createClub(t, db, "Spurs")

	profile, err := svc.Register(context.Background(), "alice", "pw", []uint64{a.ID, b.ID})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	color, err := svc.SwitchClub(context.Background(), profile, b.ID)
	if err != nil {
		t.Fatalf("SwitchClub: %v", err)
	}
	if color == "" {
		t.Fatal("应返回俱乐部品牌色")
	}
	if profile.ActiveClubID == nil || *profile.ActiveClubID != b.ID {
		t.Fatalf("主队应切到Chelsea: %v", profile.ActiveClubID)
	}

	if _, err := svc.SwitchClub(context.Background(), profile, outsider.ID); err == nil || apperr.Status(err) != http.StatusBadRequest {
		t.Fatalf("切到未支持俱乐部应返回400，得到 %v", err)
	}
}

func TestResetClearsCommentsAndClubStats(t *testing.T) {
	svc, db := newProfileService(t)
	a := createClub(t, db, "Arsenal")
	profile, err := svc.Register(context.Background(), "alice", "pw", []uint64{a.ID})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := db.Create(&model.Comment{ProfileID: profile.ID, ClubID: a.ID, Text: "t", Sentiment: model.SentimentNeutral}).Error; err != nil {
		t.Fatalf("创建评论失败: %v", err)
	}
	if err := db.Model(&model.ClubStats{}).Where("profile_id = ?", profile.ID).Update("points", 50).Error; err != nil {
		t.Fatalf("写积分失败: %v", err)
	}

	if err := svc.Reset(context.Background(), profile); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	var comments int64
	if err := db.Model(&model.Comment{}).Where("profile_id = ?", profile.ID).Count(&comments).Error; err != nil {
		t.Fatalf("数评论失败: %v", err)
	}
	if comments != 0 {
		t.Fatalf("重置后评论应清空，得到 %d", comments)
	}
	var stats model.ClubStats
	if err := db.Where("profile_id = ?", profile.ID).First(&stats).Error; err != nil {
		t.Fatalf("读ClubStats失败: %v", err)
	}
	if stats.Points != 0 {
		t.Fatalf("重置后积分应为0，得到 %d", stats.Points)
	}
	if got := model.DecodeSet(stats.Badges); len(got) != 0 {
		t.Fatalf("重置后徽章应为空集合，得到 %v", got)
	}
}
