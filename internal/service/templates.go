package service

import (
	"fmt"
	"strings"

	"leaningtree-rentals-backend/internal/domain"
	"leaningtree-rentals-backend/internal/utils"
)

const (
	businessName    = "Leaning Tree Rentals"
	businessAddress = "4261 SH 237, Round Top, Texas 78954"
	contactPhone    = "979-208-7250"
)

const emailStyles = `
  body { font-family: 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #1F2937; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; }
  .header { background-color: #B91C1C; color: white; padding: 30px 20px; text-align: center; }
  .header h1 { margin: 0; font-size: 24px; }
  .content { padding: 30px 20px; background-color: #ffffff; }
  .details-box { background-color: #F9FAFB; border-radius: 8px; padding: 20px; margin: 20px 0; }
  .detail-row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #E5E7EB; }
  .detail-row:last-child { border-bottom: none; }
  .label { color: #6B7280; }
  .value { font-weight: 600; }
  .price { color: #B91C1C; font-size: 24px; font-weight: bold; }
  .warning { background-color: #FEF3C7; border: 1px solid #D97706; border-radius: 8px; padding: 15px; margin: 20px 0; }
  .footer { text-align: center; padding: 20px; color: #6B7280; font-size: 14px; }
  .btn { display: inline-block; background-color: #B91C1C; color: white; padding: 12px 30px; text-decoration: none; border-radius: 6px; font-weight: 600; margin: 10px 0; }
`

func emailShell(headerColor, headerTitle, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><style>%s</style></head>
<body>
  <div class="container">
    <div class="header" style="background-color: %s;">
      <h1>%s</h1>
    </div>
    <div class="content">
%s
    </div>
    <div class="footer">
      <p>%s | %s</p>
      <p>Phone: %s (text preferred)</p>
    </div>
  </div>
</body>
</html>`, emailStyles, headerColor, headerTitle, content, businessName, businessAddress, contactPhone)
}

func detailRow(label, value string) string {
	return fmt.Sprintf(`      <div class="detail-row"><span class="label">%s</span><span class="value">%s</span></div>`, label, value)
}

func reservationDetailsBox(title string, r *domain.Reservation, price int32) string {
	var b strings.Builder
	fmt.Fprintf(&b, "    <div class=\"details-box\">\n      <h3 style=\"margin-top: 0;\">%s</h3>\n", title)
	b.WriteString(detailRow("Date", utils.FormatDate(r.RentalDate)) + "\n")
	b.WriteString(detailRow("Time", utils.TimeSlotLabel(r.TimeSlot)) + "\n")
	b.WriteString(detailRow("Cart", utils.CartTypeLabel(r.CartType)) + "\n")
	if price > 0 {
		fmt.Fprintf(&b, "      <div class=\"detail-row\"><span class=\"label\">Price</span><span class=\"price\">%s</span></div>\n", utils.FormatPrice(price))
	}
	b.WriteString("    </div>")
	return b.String()
}

func requestReceivedEmail(r *domain.Reservation, price int32) (subject, plain, html string) {
	subject = fmt.Sprintf("Reservation Request Received - %s", businessName)

	plain = fmt.Sprintf("Dear %s,\n\nThank you for your reservation request! We've received your information and will review it shortly.\n\nDate: %s\nTime: %s\nCart: %s\nPrice: %s\n\nOur team will review your request and check availability. You will receive another email once your reservation is confirmed.\n\nQuestions? Text us at %s",
		r.Name, utils.FormatDate(r.RentalDate), utils.TimeSlotLabel(r.TimeSlot), utils.CartTypeLabel(r.CartType), utils.FormatPrice(price), contactPhone)

	content := fmt.Sprintf(`      <h2>Reservation Request Received</h2>
      <p>Dear %s,</p>
      <p>Thank you for your reservation request! We've received your information and will review it shortly.</p>
%s
      <p><strong>What happens next?</strong></p>
      <p>Our team will review your request and check availability. You will receive another email once your reservation is confirmed.</p>
      <p>Questions? Text us at <strong>%s</strong></p>`,
		r.Name, reservationDetailsBox("Reservation Details", r, price), contactPhone)

	html = emailShell("#B91C1C", businessName, content)
	return subject, plain, html
}

func newRequestAlertEmail(r *domain.Reservation, price int32, siteURL string) (subject, plain, html string) {
	subject = fmt.Sprintf("New Reservation Request - %s - %s", r.Name, utils.FormatDate(r.RentalDate))

	plain = fmt.Sprintf("New reservation request:\n\nName: %s\nEmail: %s\nPhone: %s\nDate: %s\nTime: %s\nCart: %s\nPrice: %s",
		r.Name, r.Email, utils.FormatPhone(r.Phone), utils.FormatDate(r.RentalDate), utils.TimeSlotLabel(r.TimeSlot), utils.CartTypeLabel(r.CartType), utils.FormatPrice(price))

	customerBox := fmt.Sprintf(`    <div class="details-box">
      <h3 style="margin-top: 0;">Customer Information</h3>
%s
%s
%s
    </div>`,
		detailRow("Name", r.Name), detailRow("Email", r.Email), detailRow("Phone", utils.FormatPhone(r.Phone)))

	specialRequests := ""
	if r.SpecialRequests != "" {
		specialRequests = "\n" + detailRow("Special Requests", r.SpecialRequests)
	}

	content := fmt.Sprintf(`      <p>A new reservation request has been submitted:</p>
%s
%s%s
      <p style="text-align: center;"><a class="btn" href="%s/admin/reservations">Review in Admin Panel</a></p>`,
		customerBox, reservationDetailsBox("Reservation Details", r, price), specialRequests, siteURL)

	html = emailShell("#D97706", "New Reservation Request", content)
	return subject, plain, html
}

func confirmationEmail(r *domain.Reservation, price int32, siteURL string) (subject, plain, html string) {
	subject = fmt.Sprintf("Reservation CONFIRMED - %s", businessName)

	plain = fmt.Sprintf("Great news, %s! Your golf cart reservation has been confirmed.\n\nDate: %s\nTime: %s\nCart: %s\nPrice (pay at pickup): %s\n\nReminders: bring your signed rental agreement, pick up within 1 hour of your scheduled time, no refunds, payment is due at pickup.\n\nQuestions? Text us at %s",
		r.Name, utils.FormatDate(r.RentalDate), utils.TimeSlotLabel(r.TimeSlot), utils.CartTypeLabel(r.CartType), utils.FormatPrice(price), contactPhone)

	content := fmt.Sprintf(`      <h2>Great news, %s!</h2>
      <p>Your golf cart reservation has been confirmed. We look forward to seeing you!</p>
%s
      <div class="warning">
        <h4 style="margin-top: 0; color: #92400E;">Important Reminders</h4>
        <ul style="margin-bottom: 0; padding-left: 20px;">
          <li><strong>Please complete and bring your rental agreement</strong> with you to expedite the check-in process.</li>
          <li>Pick up your cart within <strong>1 hour</strong> of your scheduled time or your reservation will be cancelled.</li>
          <li><strong>No refunds</strong> - All sales are final. No exceptions.</li>
          <li>Payment is due at pickup. Parking lot is adjacent to rental pick-up.</li>
          <li>Carts are preassigned.</li>
          <li><strong>Wifi and cell service are limited during the show!</strong> Please save this email offline.</li>
        </ul>
      </div>
      <p style="text-align: center;"><a class="btn" style="background-color: #059669;" href="%s/rental-agreement.pdf">Download Rental Agreement (PDF)</a></p>
      <p>Questions? Text us at <strong>%s</strong></p>
      <p>See you soon!</p>
      <p><strong>%s</strong></p>`,
		r.Name, reservationDetailsBox("Confirmed Reservation", r, price), siteURL, contactPhone, businessName)

	html = emailShell("#059669", "Reservation CONFIRMED!", content)
	return subject, plain, html
}

func denialEmail(r *domain.Reservation, reason string) (subject, plain, html string) {
	subject = fmt.Sprintf("Reservation Update - %s", businessName)

	plain = fmt.Sprintf("Dear %s,\n\nUnfortunately, we are unable to confirm your reservation for %s, %s, %s.",
		r.Name, utils.FormatDate(r.RentalDate), utils.TimeSlotLabel(r.TimeSlot), utils.CartTypeLabel(r.CartType))
	if reason != "" {
		plain += fmt.Sprintf("\n\nNote from our team: %s", reason)
	}
	plain += fmt.Sprintf("\n\nPlease contact us to discuss alternative options or dates. Text us at %s", contactPhone)

	content := fmt.Sprintf(`      <h2>Reservation Update</h2>
      <p>Dear %s,</p>
      <p>Unfortunately, we are unable to confirm your reservation for:</p>
%s
%s
      <p>Please contact us to discuss alternative options or dates.</p>
      <p>Text us at <strong>%s</strong></p>
      <p>Thank you for your interest in %s.</p>`,
		r.Name, reservationDetailsBox("", r, 0), teamNoteBox(reason), contactPhone, businessName)

	html = emailShell("#B91C1C", businessName, content)
	return subject, plain, html
}

func cancellationEmail(r *domain.Reservation, reason string) (subject, plain, html string) {
	subject = fmt.Sprintf("Reservation Cancelled - %s", businessName)

	plain = fmt.Sprintf("Dear %s,\n\nYour reservation for %s, %s, %s has been cancelled.",
		r.Name, utils.FormatDate(r.RentalDate), utils.TimeSlotLabel(r.TimeSlot), utils.CartTypeLabel(r.CartType))
	if reason != "" {
		plain += fmt.Sprintf("\n\nNote from our team: %s", reason)
	}
	plain += fmt.Sprintf("\n\nIf you have any questions or would like to make a new reservation, please contact us. Text us at %s", contactPhone)

	content := fmt.Sprintf(`      <p>Dear %s,</p>
      <p>Your reservation has been cancelled:</p>
%s
%s
      <p>If you have any questions or would like to make a new reservation, please contact us.</p>
      <p>Text us at <strong>%s</strong></p>
      <p>Thank you for your interest in %s.</p>`,
		r.Name, reservationDetailsBox("", r, 0), teamNoteBox(reason), contactPhone, businessName)

	html = emailShell("#6B7280", "Reservation Cancelled", content)
	return subject, plain, html
}

func pendingDigestEmail(pending []domain.Reservation, pricing utils.PricingTable, siteURL string) (subject, plain, html string) {
	subject = fmt.Sprintf("%d Reservation Request(s) Awaiting Review - %s", len(pending), businessName)

	var plainB, rowsB strings.Builder
	fmt.Fprintf(&plainB, "%d reservation request(s) are awaiting review:\n", len(pending))
	for _, r := range pending {
		price := pricing.Price(r.CartType, r.TimeSlot)
		fmt.Fprintf(&plainB, "\n- %s | %s | %s | %s | %s",
			r.Name, utils.FormatDate(r.RentalDate), utils.TimeSlotLabel(r.TimeSlot), utils.CartTypeLabel(r.CartType), utils.FormatPrice(price))
		fmt.Fprintf(&rowsB, `      <tr>
        <td style="padding: 8px; border-bottom: 1px solid #E5E7EB;">%s</td>
        <td style="padding: 8px; border-bottom: 1px solid #E5E7EB;">%s</td>
        <td style="padding: 8px; border-bottom: 1px solid #E5E7EB;">%s</td>
        <td style="padding: 8px; border-bottom: 1px solid #E5E7EB;">%s</td>
        <td style="padding: 8px; border-bottom: 1px solid #E5E7EB;">%s</td>
      </tr>
`, r.Name, utils.FormatDate(r.RentalDate), utils.TimeSlotLabel(r.TimeSlot), utils.CartTypeLabel(r.CartType), utils.FormatPrice(price))
	}

	content := fmt.Sprintf(`      <p>%d reservation request(s) are awaiting review:</p>
    <table style="width: 100%%; border-collapse: collapse;">
      <tr>
        <th style="text-align: left; padding: 8px;">Name</th>
        <th style="text-align: left; padding: 8px;">Date</th>
        <th style="text-align: left; padding: 8px;">Time</th>
        <th style="text-align: left; padding: 8px;">Cart</th>
        <th style="text-align: left; padding: 8px;">Price</th>
      </tr>
%s    </table>
      <p style="text-align: center;"><a class="btn" href="%s/admin/reservations">Review in Admin Panel</a></p>`,
		len(pending), rowsB.String(), siteURL)

	html = emailShell("#D97706", "Pending Reservations", content)
	return subject, plainB.String(), html
}

func teamNoteBox(reason string) string {
	if reason == "" {
		return ""
	}
	return fmt.Sprintf(`    <div class="details-box">
      <p style="margin: 0;"><strong>Note from our team:</strong></p>
      <p style="margin-bottom: 0;">%s</p>
    </div>`, reason)
}
