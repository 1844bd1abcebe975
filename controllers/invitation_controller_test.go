package controllers_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vnkhanh/social-server/config"
	"github.com/vnkhanh/social-server/models"
	"github.com/vnkhanh/social-server/utils"
)

func attenderCount(t *testing.T, eventID uint) int64 {
	t.Helper()

	var count int64
	config.DB.Table("event_attenders").Where("event_id = ?", eventID).Count(&count)
	return count
}

func TestAcceptInvitationAddsAttenderAndDeletes(t *testing.T) {
	r := setupTest(t)
	sender := newUser(t, "Nguyen", "An", "an@example.com")
	receiver := newUser(t, "Tran", "Binh", "binh@example.com")
	ev := newEvent(t, sender, "BBQ", 0, 0, false)

	w := doJSON(t, r, "POST", "/api/invitations", tokenFor(t, sender),
		map[string]interface{}{"receiver_id": receiver.ID, "event_id": ev.ID})
	wantStatus(t, w, 201)
	invID := uint(decodeObject(t, w)["id"].(float64))

	w = doJSON(t, r, "POST", fmt.Sprintf("/api/invitations/%d/accept", invID),
		tokenFor(t, receiver), nil)
	wantStatus(t, w, 200)

	if attenderCount(t, ev.ID) != 1 {
		t.Fatalf("receiver chưa được thêm vào attenders")
	}
	var count int64
	config.DB.Model(&models.Invitation{}).Count(&count)
	if count != 0 {
		t.Fatalf("lời mời vẫn còn sau khi accept")
	}
}

func TestRejectInvitationLeavesAttendersUnchanged(t *testing.T) {
	r := setupTest(t)
	sender := newUser(t, "Nguyen", "An", "an@example.com")
	receiver := newUser(t, "Tran", "Binh", "binh@example.com")
	ev := newEvent(t, sender, "BBQ", 0, 0, false)

	w := doJSON(t, r, "POST", "/api/invitations", tokenFor(t, sender),
		map[string]interface{}{"receiver_id": receiver.ID, "event_id": ev.ID})
	wantStatus(t, w, 201)
	invID := uint(decodeObject(t, w)["id"].(float64))

	w = doJSON(t, r, "POST", fmt.Sprintf("/api/invitations/%d/reject", invID),
		tokenFor(t, receiver), nil)
	wantStatus(t, w, 200)

	if attenderCount(t, ev.ID) != 0 {
		t.Fatalf("reject không được thêm attender")
	}
	var count int64
	config.DB.Model(&models.Invitation{}).Count(&count)
	if count != 0 {
		t.Fatalf("lời mời vẫn còn sau khi reject")
	}
}

func TestInvitationRespondForbiddenForSender(t *testing.T) {
	r := setupTest(t)
	sender := newUser(t, "Nguyen", "An", "an@example.com")
	receiver := newUser(t, "Tran", "Binh", "binh@example.com")
	ev := newEvent(t, sender, "BBQ", 0, 0, false)

	w := doJSON(t, r, "POST", "/api/invitations", tokenFor(t, sender),
		map[string]interface{}{"receiver_id": receiver.ID, "event_id": ev.ID})
	wantStatus(t, w, 201)
	invID := uint(decodeObject(t, w)["id"].(float64))

	// chỉ người nhận được phản hồi
	w = doJSON(t, r, "POST", fmt.Sprintf("/api/invitations/%d/accept", invID),
		tokenFor(t, sender), nil)
	wantStatus(t, w, 403)
}

func TestDuplicateInvitationsTolerated(t *testing.T) {
	r := setupTest(t)
	sender := newUser(t, "Nguyen", "An", "an@example.com")
	receiver := newUser(t, "Tran", "Binh", "binh@example.com")
	ev := newEvent(t, sender, "BBQ", 0, 0, false)

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, "POST", "/api/invitations", tokenFor(t, sender),
			map[string]interface{}{"receiver_id": receiver.ID, "event_id": ev.ID})
		wantStatus(t, w, 201)
	}

	var count int64
	config.DB.Model(&models.Invitation{}).Count(&count)
	if count != 2 {
		t.Fatalf("có %d lời mời, muốn 2 (không dedup)", count)
	}

	w := doJSON(t, r, "GET", "/api/invitations", tokenFor(t, receiver), nil)
	wantStatus(t, w, 200)
	if len(decodeList(t, w)) != 2 {
		t.Fatalf("feed phải hiện cả hai lời mời")
	}
}

func TestAcceptInvitationIdempotentAttendance(t *testing.T) {
	r := setupTest(t)
	sender := newUser(t, "Nguyen", "An", "an@example.com")
	receiver := newUser(t, "Tran", "Binh", "binh@example.com")
	ev := newEvent(t, sender, "BBQ", 0, 0, false)

	// receiver đã tham gia sẵn
	doJSON(t, r, "POST", fmt.Sprintf("/api/events/%d/attend", ev.ID), tokenFor(t, receiver), nil)

	w := doJSON(t, r, "POST", "/api/invitations", tokenFor(t, sender),
		map[string]interface{}{"receiver_id": receiver.ID, "event_id": ev.ID})
	wantStatus(t, w, 201)
	invID := uint(decodeObject(t, w)["id"].(float64))

	w = doJSON(t, r, "POST", fmt.Sprintf("/api/invitations/%d/accept", invID),
		tokenFor(t, receiver), nil)
	wantStatus(t, w, 200)

	if attenderCount(t, ev.ID) != 1 {
		t.Fatalf("accept khi đã tham gia không được nhân đôi attendance")
	}
}

func TestInviteByEmailUsesMailer(t *testing.T) {
	r := setupTest(t)
	sender := newUser(t, "Nguyen", "An", "an@example.com")
	ev := newEvent(t, sender, "BBQ", 0, 0, false)

	orig := utils.SendMail
	defer func() { utils.SendMail = orig }()

	var sentTo string
	utils.SendMail = func(to, subject, body string) error {
		sentTo = to
		return nil
	}

	w := doJSON(t, r, "POST", "/api/invitations/email", tokenFor(t, sender),
		map[string]interface{}{"email": "moi@example.com", "event_id": ev.ID})
	wantStatus(t, w, 200)
	if sentTo != "moi@example.com" {
		t.Fatalf("mail gửi tới %q", sentTo)
	}

	// lỗi gửi mail → 502
	utils.SendMail = func(to, subject, body string) error {
		return errors.New("smtp down")
	}
	w = doJSON(t, r, "POST", "/api/invitations/email", tokenFor(t, sender),
		map[string]interface{}{"email": "moi@example.com", "event_id": ev.ID})
	wantStatus(t, w, 502)
}
