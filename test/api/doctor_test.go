package api_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestDoctorLifecycle(t *testing.T) {
	requireServer(t)

	code := uniqueCode("CRM")
	createResp := makeRequest("POST", "/doctors", map[string]interface{}{
		"professional_code": code,
		"name":              "Dr. Lifecycle",
		"specialty":         "Dermatology",
		"establishment_id":  "est-test",
		"email":             "lifecycle@example.com",
	})
	if createResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", createResp.StatusCode, createResp.Message)
	}
	doctorID := createResp.GetID()
	if doctorID == 0 {
		t.Fatal("expected a doctor id")
	}
	if active, ok := createResp.Data["is_active"].(bool); !ok || !active {
		t.Error("expected new doctor to be active")
	}

	getResp := makeRequest("GET", fmt.Sprintf("/doctors/%d", doctorID), nil)
	if !getResp.IsSuccess() {
		t.Fatalf("failed to fetch doctor: %s", getResp.Message)
	}
	if getResp.GetString("professional_code") != code {
		t.Errorf("expected professional_code %s, got %s", code, getResp.GetString("professional_code"))
	}

	listResp := makeRequest("GET", "/doctors?specialty=dermat", nil)
	if !listResp.IsSuccess() {
		t.Fatalf("failed to list doctors: %s", listResp.Message)
	}

	deleteResp := makeRequest("DELETE", fmt.Sprintf("/doctors/%d", doctorID), nil)
	if deleteResp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", deleteResp.StatusCode)
	}

	goneResp := makeRequest("GET", fmt.Sprintf("/doctors/%d", doctorID), nil)
	if goneResp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", goneResp.StatusCode)
	}
}

func TestDoctorDeleteCascades(t *testing.T) {
	requireServer(t)

	doctorID := createTestDoctor(t)

	for day := 0; day < 2; day++ {
		resp := makeRequest("POST", fmt.Sprintf("/doctors/%d/availability", doctorID), map[string]interface{}{
			"day_of_week": day,
			"start_time":  "09:00",
			"end_time":    "12:00",
		})
		if !resp.IsSuccess() {
			t.Fatalf("failed to create window: %s", resp.Message)
		}
	}

	var appointmentIDs []int64
	for _, timeOfDay := range []string{"09:00", "10:00"} {
		resp := makeRequest("POST", "/appointments", map[string]interface{}{
			"doctor_id":        doctorID,
			"patient_name":     "Cascade Patient",
			"patient_email":    "cascade@example.com",
			"patient_phone":    "555-0100",
			"appointment_date": futureDate(5),
			"appointment_time": timeOfDay,
		})
		if !resp.IsSuccess() {
			t.Fatalf("failed to book appointment: %s", resp.Message)
		}
		appointmentIDs = append(appointmentIDs, resp.GetID())
	}

	deleteResp := makeRequest("DELETE", fmt.Sprintf("/doctors/%d", doctorID), nil)
	if deleteResp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", deleteResp.StatusCode)
	}

	// Nothing referencing the doctor survives the delete.
	windows := makeRequest("GET", fmt.Sprintf("/doctors/%d/availability", doctorID), nil)
	if !windows.IsSuccess() {
		t.Fatalf("failed to list windows: %s", windows.Message)
	}
	if len(windows.Items) != 0 {
		t.Errorf("expected no windows after cascade, got %d", len(windows.Items))
	}

	for _, id := range appointmentIDs {
		resp := makeRequest("GET", fmt.Sprintf("/appointments/%d", id), nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404 for appointment %d after cascade, got %d", id, resp.StatusCode)
		}
	}

	listed := makeRequest("GET", fmt.Sprintf("/appointments?doctor_id=%d", doctorID), nil)
	if !listed.IsSuccess() {
		t.Fatalf("failed to list appointments: %s", listed.Message)
	}
	if len(listed.Items) != 0 {
		t.Errorf("expected no appointments after cascade, got %d", len(listed.Items))
	}
}

func TestDoctorDuplicateProfessionalCode(t *testing.T) {
	requireServer(t)

	code := uniqueCode("CRM")
	payload := map[string]interface{}{
		"professional_code": code,
		"name":              "Dr. First",
		"establishment_id":  "est-test",
	}

	first := makeRequest("POST", "/doctors", payload)
	if !first.IsSuccess() {
		t.Fatalf("failed to create doctor: %s", first.Message)
	}
	t.Cleanup(func() {
		makeRequest("DELETE", fmt.Sprintf("/doctors/%d", first.GetID()), nil)
	})

	payload["name"] = "Dr. Second"
	second := makeRequest("POST", "/doctors", payload)
	if second.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate code, got %d", second.StatusCode)
	}
}

func TestDoctorValidation(t *testing.T) {
	requireServer(t)

	// Missing required fields.
	resp := makeRequest("POST", "/doctors", map[string]interface{}{"name": "Dr. Nameless"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	resp = makeRequest("POST", "/doctors", map[string]interface{}{
		"professional_code": uniqueCode("CRM"),
		"name":              "Dr. Bad Email",
		"establishment_id":  "est-test",
		"email":             "not-an-email",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for bad email, got %d", resp.StatusCode)
	}

	resp = makeRequest("GET", "/doctors/999999999", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDoctorDashboard(t *testing.T) {
	requireServer(t)

	doctorID := createTestDoctor(t)

	for _, tc := range []struct{ date, time string }{
		{futureDate(3), "10:00"},
		{futureDate(2), "09:00"},
		{futureDate(2), "08:00"},
	} {
		resp := makeRequest("POST", "/appointments", map[string]interface{}{
			"doctor_id":        doctorID,
			"patient_name":     "Dashboard Patient",
			"patient_email":    "dashboard@example.com",
			"patient_phone":    "555-0100",
			"appointment_date": tc.date,
			"appointment_time": tc.time,
		})
		if !resp.IsSuccess() {
			t.Fatalf("failed to book appointment: %s", resp.Message)
		}
	}

	resp := makeRequest("GET", fmt.Sprintf("/doctors/%d/dashboard", doctorID), nil)
	if !resp.IsSuccess() {
		t.Fatalf("failed to load dashboard: %s", resp.Message)
	}
	if len(resp.Items) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(resp.Items))
	}

	// Chronological order, oldest first.
	var prev string
	for i, item := range resp.Items {
		apt, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("unexpected item shape at %d", i)
		}
		key := fmt.Sprintf("%v %v", apt["appointment_date"], apt["appointment_time"])
		if key < prev {
			t.Errorf("dashboard out of order: %s before %s", prev, key)
		}
		prev = key
	}

	// Inclusive date range.
	ranged := makeRequest("GET",
		fmt.Sprintf("/doctors/%d/dashboard?start_date=%s&end_date=%s", doctorID, futureDate(2), futureDate(2)), nil)
	if !ranged.IsSuccess() {
		t.Fatalf("failed to load ranged dashboard: %s", ranged.Message)
	}
	if len(ranged.Items) != 2 {
		t.Errorf("expected 2 appointments in range, got %d", len(ranged.Items))
	}

	missing := makeRequest("GET", "/doctors/999999999/dashboard", nil)
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown doctor, got %d", missing.StatusCode)
	}
}
