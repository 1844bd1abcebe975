package controllers_test

import (
	"fmt"
	"testing"

	"github.com/vnkhanh/social-server/config"
	"github.com/vnkhanh/social-server/models"
)

func friendIDs(t *testing.T, u models.NguoiDung) map[uint]bool {
	t.Helper()

	var friends []*models.NguoiDung
	if err := config.DB.Model(&u).Association("Friends").Find(&friends); err != nil {
		t.Fatalf("find friends: %v", err)
	}
	out := make(map[uint]bool)
	for _, f := range friends {
		out[f.ID] = true
	}
	return out
}

func TestFriendRequestAcceptIsMutual(t *testing.T) {
	r := setupTest(t)
	a := newUser(t, "Nguyen", "An", "an@example.com")
	b := newUser(t, "Tran", "Binh", "binh@example.com")

	w := doJSON(t, r, "POST", "/api/friends/requests", tokenFor(t, a),
		map[string]interface{}{"receiver_id": b.ID})
	wantStatus(t, w, 201)
	req := decodeObject(t, w)
	reqID := uint(req["id"].(float64))

	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/friends/requests/%d/respond", reqID),
		tokenFor(t, b), map[string]interface{}{"accept": true})
	wantStatus(t, w, 200)

	if !friendIDs(t, a)[b.ID] {
		t.Fatalf("a.friends thiếu b")
	}
	if !friendIDs(t, b)[a.ID] {
		t.Fatalf("b.friends thiếu a")
	}

	var count int64
	config.DB.Model(&models.FriendRequest{}).Count(&count)
	if count != 0 {
		t.Fatalf("lời mời vẫn còn sau khi accept: %d", count)
	}
}

func TestFriendRequestRejectOnlyDeletes(t *testing.T) {
	r := setupTest(t)
	a := newUser(t, "Nguyen", "An", "an@example.com")
	b := newUser(t, "Tran", "Binh", "binh@example.com")

	w := doJSON(t, r, "POST", "/api/friends/requests", tokenFor(t, a),
		map[string]interface{}{"receiver_id": b.ID})
	wantStatus(t, w, 201)
	reqID := uint(decodeObject(t, w)["id"].(float64))

	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/friends/requests/%d/respond", reqID),
		tokenFor(t, b), map[string]interface{}{"accept": false})
	wantStatus(t, w, 200)

	if len(friendIDs(t, a)) != 0 || len(friendIDs(t, b)) != 0 {
		t.Fatalf("reject không được tạo bạn bè")
	}
	var count int64
	config.DB.Model(&models.FriendRequest{}).Count(&count)
	if count != 0 {
		t.Fatalf("lời mời vẫn còn sau khi reject")
	}
}

func TestFriendRequestRespondForbiddenForThirdParty(t *testing.T) {
	r := setupTest(t)
	a := newUser(t, "Nguyen", "An", "an@example.com")
	b := newUser(t, "Tran", "Binh", "binh@example.com")
	x := newUser(t, "Le", "Xuan", "xuan@example.com")

	w := doJSON(t, r, "POST", "/api/friends/requests", tokenFor(t, a),
		map[string]interface{}{"receiver_id": b.ID})
	wantStatus(t, w, 201)
	reqID := uint(decodeObject(t, w)["id"].(float64))

	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/friends/requests/%d/respond", reqID),
		tokenFor(t, x), map[string]interface{}{"accept": true})
	wantStatus(t, w, 403)
}

func TestFriendRequestSenderCanCancel(t *testing.T) {
	r := setupTest(t)
	a := newUser(t, "Nguyen", "An", "an@example.com")
	b := newUser(t, "Tran", "Binh", "binh@example.com")

	w := doJSON(t, r, "POST", "/api/friends/requests", tokenFor(t, a),
		map[string]interface{}{"receiver_id": b.ID})
	wantStatus(t, w, 201)
	reqID := uint(decodeObject(t, w)["id"].(float64))

	// sender hủy bằng accept=false
	w = doJSON(t, r, "PUT", fmt.Sprintf("/api/friends/requests/%d/respond", reqID),
		tokenFor(t, a), map[string]interface{}{"accept": false})
	wantStatus(t, w, 200)

	var count int64
	config.DB.Model(&models.FriendRequest{}).Count(&count)
	if count != 0 {
		t.Fatalf("lời mời vẫn còn sau khi cancel")
	}
}

func TestFriendRequestIdempotentCreate(t *testing.T) {
	r := setupTest(t)
	a := newUser(t, "Nguyen", "An", "an@example.com")
	b := newUser(t, "Tran", "Binh", "binh@example.com")

	for i := 0; i < 3; i++ {
		w := doJSON(t, r, "POST", "/api/friends/requests", tokenFor(t, a),
			map[string]interface{}{"receiver_id": b.ID})
		wantStatus(t, w, 201)
	}

	var count int64
	config.DB.Model(&models.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ?", a.ID, b.ID).
		Count(&count)
	if count != 1 {
		t.Fatalf("gửi lặp tạo %d bản ghi, muốn 1", count)
	}

	// lời mời ngược chiều là bản ghi riêng
	w := doJSON(t, r, "POST", "/api/friends/requests", tokenFor(t, b),
		map[string]interface{}{"receiver_id": a.ID})
	wantStatus(t, w, 201)
	config.DB.Model(&models.FriendRequest{}).Count(&count)
	if count != 2 {
		t.Fatalf("tổng bản ghi = %d, muốn 2", count)
	}
}

func TestFriendRequestToSelfRejected(t *testing.T) {
	r := setupTest(t)
	a := newUser(t, "Nguyen", "An", "an@example.com")

	w := doJSON(t, r, "POST", "/api/friends/requests", tokenFor(t, a),
		map[string]interface{}{"receiver_id": a.ID})
	wantStatus(t, w, 400)
}

func TestRemoveFriendIdempotent(t *testing.T) {
	r := setupTest(t)
	a := newUser(t, "Nguyen", "An", "an@example.com")
	b := newUser(t, "Tran", "Binh", "binh@example.com")
	befriend(t, a, b)

	w := doJSON(t, r, "DELETE", fmt.Sprintf("/api/friends/%d", b.ID), tokenFor(t, a), nil)
	wantStatus(t, w, 200)

	// gọi lại lần nữa vẫn thành công
	w = doJSON(t, r, "DELETE", fmt.Sprintf("/api/friends/%d", b.ID), tokenFor(t, a), nil)
	wantStatus(t, w, 200)

	if len(friendIDs(t, a)) != 0 || len(friendIDs(t, b)) != 0 {
		t.Fatalf("bạn bè chưa bị gỡ cả hai chiều")
	}
}

func TestSearchFriendsScopedToFriendSet(t *testing.T) {
	r := setupTest(t)
	a := newUser(t, "Nguyen", "An", "an@example.com")
	b := newUser(t, "Tran", "Binh", "binh@example.com")
	newUser(t, "Tran", "Bich", "bich@example.com") // trùng tên nhưng không phải bạn
	befriend(t, a, b)

	w := doJSON(t, r, "GET", "/api/friends/search?name=tran", tokenFor(t, a), nil)
	wantStatus(t, w, 200)
	results := decodeList(t, w)
	if len(results) != 1 {
		t.Fatalf("tìm thấy %d người, muốn 1", len(results))
	}
	if uint(results[0]["id"].(float64)) != b.ID {
		t.Fatalf("kết quả sai người")
	}
}

func TestMarkFriendRequestsSeen(t *testing.T) {
	r := setupTest(t)
	a := newUser(t, "Nguyen", "An", "an@example.com")
	b := newUser(t, "Tran", "Binh", "binh@example.com")

	w := doJSON(t, r, "POST", "/api/friends/requests", tokenFor(t, a),
		map[string]interface{}{"receiver_id": b.ID})
	wantStatus(t, w, 201)

	// danh sách chỉ đọc, không tự đánh dấu seen
	w = doJSON(t, r, "GET", "/api/friends/requests", tokenFor(t, b), nil)
	wantStatus(t, w, 200)

	var unseen int64
	config.DB.Model(&models.FriendRequest{}).
		Where("receiver_id = ? AND seen = ?", b.ID, false).
		Count(&unseen)
	if unseen != 1 {
		t.Fatalf("list không được đánh dấu seen, unseen = %d", unseen)
	}

	w = doJSON(t, r, "PUT", "/api/friends/requests/seen", tokenFor(t, b), nil)
	wantStatus(t, w, 200)

	config.DB.Model(&models.FriendRequest{}).
		Where("receiver_id = ? AND seen = ?", b.ID, false).
		Count(&unseen)
	if unseen != 0 {
		t.Fatalf("sau mark seen vẫn còn %d chưa xem", unseen)
	}
}
