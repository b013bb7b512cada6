// Command demo walks a running GoWheels API through one ride: signup, booking,
// driver selection, completion and payment.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gowheels/gowheels-backend/internal/models"
)

var client = &http.Client{Timeout: 10 * time.Second}

func main() {
	baseURL := os.Getenv("GOWHEELS_API")
	if baseURL == "" {
		baseURL = "http://localhost:8080/api"
	}
	suffix := time.Now().Format("150405")

	fmt.Println("=== GoWheels ride walkthrough ===")

	fmt.Println("\n1. Sign up a passenger and a driver:")
	signup(baseURL, map[string]interface{}{
		"username":        "rider" + suffix,
		"password":        "secret1",
		"category":        "passenger",
		"name":            "Demo Rider",
		"date_of_birth":   "1996-04-12",
		"pickup_location": "Westlands",
	})
	signup(baseURL, map[string]interface{}{
		"username":      "driver" + suffix,
		"password":      "secret1",
		"category":      "driver",
		"name":          "Demo Driver",
		"date_of_birth": "1988-09-30",
		"car_no":        "KDA-" + suffix,
		"car_model":     "Toyota Axio",
		"car_type":      "Sedan",
		"cab_location":  "CBD",
		"rating":        4.6,
	})

	riderToken, rider := login(baseURL, "rider"+suffix)
	driverToken, driver := login(baseURL, "driver"+suffix)
	if rider.Passenger == nil || driver.Driver == nil {
		fmt.Println("login did not return the expected profiles")
		os.Exit(1)
	}

	fmt.Println("\n2. Driver goes online:")
	call(baseURL, "PUT", fmt.Sprintf("/drivers/%d/status", driver.Driver.ID), driverToken,
		map[string]interface{}{"status": models.DriverStatusAvailable}, nil)

	fmt.Println("\n3. Passenger books a ride:")
	var booking struct {
		ID uint `json:"id"`
	}
	call(baseURL, "POST", "/bookings", riderToken, map[string]interface{}{
		"passenger_id":    rider.Passenger.ID,
		"pickup_location": "Westlands",
		"drop_location":   "Karen",
	}, &booking)

	fmt.Println("\n4. Passenger picks the driver:")
	var trip struct {
		TripID uint `json:"trip_id"`
		Fare   int  `json:"fare"`
	}
	call(baseURL, "POST", "/trips", riderToken, map[string]interface{}{
		"booking_id": booking.ID,
		"driver_id":  driver.Driver.ID,
	}, &trip)
	fmt.Printf("Trip %d priced at %d\n", trip.TripID, trip.Fare)

	fmt.Println("\n5. Driver completes the trip:")
	call(baseURL, "PUT", fmt.Sprintf("/trips/%d/status", trip.TripID), driverToken,
		map[string]interface{}{"status": models.TripStatusCompleted}, nil)

	fmt.Println("\n6. Passenger pays:")
	call(baseURL, "POST", "/payments", riderToken, map[string]interface{}{
		"trip_id":        trip.TripID,
		"payment_type":   "cash",
		"payment_amount": trip.Fare,
	}, nil)
}

type profile struct {
	Passenger *struct {
		ID uint `json:"passenger_id"`
	} `json:"passenger"`
	Driver *struct {
		ID uint `json:"driver_id"`
	} `json:"driver"`
}

func signup(baseURL string, body map[string]interface{}) {
	call(baseURL, "POST", "/auth/signup", "", body, nil)
}

func login(baseURL, username string) (string, profile) {
	var out struct {
		Token   string  `json:"token"`
		Profile profile `json:"profile"`
	}
	call(baseURL, "POST", "/auth/login", "", map[string]interface{}{
		"username": username,
		"password": "secret1",
	}, &out)
	return out.Token, out.Profile
}

// call sends body as JSON, prints the status and decodes the reply into out
// when out is non-nil.
func call(baseURL, method, path, token string, body interface{}, out interface{}) {
	jsonData, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, baseURL+path, bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	fmt.Printf("%s %s -> %d\n", method, path, resp.StatusCode)
	if resp.StatusCode >= 300 {
		fmt.Printf("Body: %s\n", raw)
		os.Exit(1)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			fmt.Printf("Error decoding response: %v\n", err)
			os.Exit(1)
		}
	}
}
