package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Smoke-test client that walks every endpoint of a running server in
// order: registration, readings, per-patient queries, then the admin
// reports.
func main() {
	baseURL := flag.String("url", "http://127.0.0.1:5000", "server base URL")
	flag.Parse()

	client := resty.New().
		SetBaseURL(*baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	get(client, "/")

	post(client, "/api/new_attending", map[string]any{
		"attending_username": "Banks.J",
		"attending_email":    "DrBanksJohn@BLH_hospital.com",
		"attending_phone":    "228-677-1325",
	})

	post(client, "/api/new_patient", map[string]any{
		"patient_id":         1,
		"attending_username": "Banks.J",
		"patient_age":        25, // in years
	})

	for _, heartRate := range []int{90, 95, 140} {
		post(client, "/api/heart_rate", map[string]any{
			"patient_id": 1,
			"heart_rate": heartRate, // in bpm
		})
		// consecutive readings need distinct second-resolution
		// timestamps or the later one overwrites the earlier
		time.Sleep(1 * time.Second)
	}

	get(client, "/api/status/1")
	get(client, "/api/heart_rate/1")
	get(client, "/api/heart_rate/average/1")

	post(client, "/api/heart_rate/interval_average", map[string]any{
		"patient_id":               1,
		"heart_rate_average_since": "2018-03-09 11:00:36",
	})

	get(client, "/api/patients/Banks.J")

	admin := map[string]any{
		"admin_username": "RamanaB",
		"admin_password": "RamanaB2",
	}
	post(client, "/api/new_administrator", admin)
	post(client, "/api/admin/all_attendings", admin)
	post(client, "/api/admin/all_patients", admin)

	post(client, "/api/admin/all_tachycardia", map[string]any{
		"admin_username": "RamanaB",
		"admin_password": "RamanaB2",
		"since_time":     "2018-03-09 11:00:36",
	})
}

func get(client *resty.Client, path string) {
	resp, err := client.R().Get(path)
	show(path, resp, err)
}

func post(client *resty.Client, path string, body map[string]any) {
	resp, err := client.R().SetBody(body).Post(path)
	show(path, resp, err)
}

func show(path string, resp *resty.Response, err error) {
	if err != nil {
		fmt.Printf("%s: %v\n", path, err)
		return
	}
	fmt.Printf("%s: %d\n%s\n", path, resp.StatusCode(), resp.String())
}
