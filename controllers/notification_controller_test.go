package controllers_test

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/social-server/config"
	"github.com/vnkhanh/social-server/models"
)

func seedNotifications(t *testing.T, r *gin.Engine, me, other models.NguoiDung) models.Event {
	t.Helper()

	ev := newEvent(t, other, "BBQ", 0, 0, false)

	w := doJSON(t, r, "POST", fmt.Sprintf("/api/messages/%d", me.ID), tokenFor(t, other),
		map[string]interface{}{"text": "chào bạn"})
	wantStatus(t, w, 201)
	w = doJSON(t, r, "POST", "/api/invitations", tokenFor(t, other),
		map[string]interface{}{"receiver_id": me.ID, "event_id": ev.ID})
	wantStatus(t, w, 201)
	w = doJSON(t, r, "POST", "/api/friends/requests", tokenFor(t, other),
		map[string]interface{}{"receiver_id": me.ID})
	wantStatus(t, w, 201)

	return ev
}

func TestNotificationsCount(t *testing.T) {
	r := setupTest(t)
	me := newUser(t, "Nguyen", "An", "an@example.com")
	other := newUser(t, "Tran", "Binh", "binh@example.com")
	seedNotifications(t, r, me, other)

	w := doJSON(t, r, "GET", "/api/notifications/count", tokenFor(t, me), nil)
	wantStatus(t, w, 200)
	counts := decodeObject(t, w)
	if counts["messages"].(float64) != 1 ||
		counts["invitations"].(float64) != 1 ||
		counts["friend_requests"].(float64) != 1 {
		t.Fatalf("counts sai: %v", counts)
	}

	// đánh dấu đã xem từng nguồn rồi đếm lại
	wantStatus(t, doJSON(t, r, "PUT", fmt.Sprintf("/api/messages/%d/seen", other.ID), tokenFor(t, me), nil), 200)
	wantStatus(t, doJSON(t, r, "PUT", "/api/invitations/seen", tokenFor(t, me), nil), 200)
	wantStatus(t, doJSON(t, r, "PUT", "/api/friends/requests/seen", tokenFor(t, me), nil), 200)

	w = doJSON(t, r, "GET", "/api/notifications/count", tokenFor(t, me), nil)
	wantStatus(t, w, 200)
	counts = decodeObject(t, w)
	if counts["messages"].(float64) != 0 ||
		counts["invitations"].(float64) != 0 ||
		counts["friend_requests"].(float64) != 0 {
		t.Fatalf("counts phải về 0 sau khi mark seen: %v", counts)
	}
}

func TestNotificationsFeedIsReadOnly(t *testing.T) {
	r := setupTest(t)
	me := newUser(t, "Nguyen", "An", "an@example.com")
	other := newUser(t, "Tran", "Binh", "binh@example.com")
	seedNotifications(t, r, me, other)

	// gọi feed hai lần, trạng thái seen không được thay đổi
	for i := 0; i < 2; i++ {
		w := doJSON(t, r, "GET", "/api/notifications", tokenFor(t, me), nil)
		wantStatus(t, w, 200)
		feed := decodeObject(t, w)
		if len(feed["messages"].([]interface{})) != 1 ||
			len(feed["invitations"].([]interface{})) != 1 ||
			len(feed["friend_requests"].([]interface{})) != 1 {
			t.Fatalf("feed lần %d thiếu dữ liệu: %v", i+1, feed)
		}
	}

	var unseen int64
	config.DB.Model(&models.ChatMessage{}).
		Where("receiver_id = ? AND seen = ?", me.ID, false).Count(&unseen)
	if unseen != 1 {
		t.Fatalf("feed đã tự đánh dấu seen tin nhắn")
	}
	config.DB.Model(&models.FriendRequest{}).
		Where("receiver_id = ? AND seen = ?", me.ID, false).Count(&unseen)
	if unseen != 1 {
		t.Fatalf("feed đã tự đánh dấu seen lời mời kết bạn")
	}
}

func TestNotificationsDedupesSenders(t *testing.T) {
	r := setupTest(t)
	me := newUser(t, "Nguyen", "An", "an@example.com")
	other := newUser(t, "Tran", "Binh", "binh@example.com")

	// hai tin nhắn chưa xem từ cùng một người → một entry duy nhất
	for i := 0; i < 2; i++ {
		w := doJSON(t, r, "POST", fmt.Sprintf("/api/messages/%d", me.ID), tokenFor(t, other),
			map[string]interface{}{"text": fmt.Sprintf("tin %d", i)})
		wantStatus(t, w, 201)
	}

	w := doJSON(t, r, "GET", "/api/notifications", tokenFor(t, me), nil)
	wantStatus(t, w, 200)
	feed := decodeObject(t, w)
	if len(feed["messages"].([]interface{})) != 1 {
		t.Fatalf("người gửi phải được gộp lại còn một entry")
	}
}
