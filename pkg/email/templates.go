package email

// passwordResetTemplate is the HTML template for password reset emails
const passwordResetTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Reset Your Password</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
                    <tr>
                        <td style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.AppName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px;">Reset Your Password</h2>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                We received a request to reset the password for the account associated with <strong>{{.Email}}</strong>.
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 30px 0;">
                                Click the button below to reset your password. This link will expire in <strong>1 hour</strong>.
                            </p>
                            <table role="presentation" style="margin: 0 auto 30px auto;">
                                <tr>
                                    <td style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); border-radius: 8px;">
                                        <a href="{{.ResetURL}}" style="display: inline-block; padding: 16px 32px; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 600;">Reset Password</a>
                                    </td>
                                </tr>
                            </table>
                            <p style="color: #718096; font-size: 14px; line-height: 1.6; margin: 0;">
                                If you didn't request this password reset, you can safely ignore this email. Your password will remain unchanged.
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0;">This email was sent by {{.AppName}}</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

// staffInvitationTemplate is the HTML template for staff welcome emails
const staffInvitationTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Your Staff Account</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
                    <tr>
                        <td style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">Welcome to {{.AppName}}!</h1>
                            <p style="color: #e2e8f0; margin: 10px 0 0 0;">Your Staff Account is Ready</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 22px;">Hello {{.FirstName}} {{.LastName}}!</h2>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Your staff account has been created and you can now access the system.
                            </p>
                            <table role="presentation" style="width: 100%; background-color: #e3f2fd; border-left: 4px solid #2196f3; border-radius: 8px; margin: 0 0 20px 0;">
                                <tr>
                                    <td style="padding: 20px;">
                                        <p style="color: #1a1a2e; font-size: 15px; margin: 0 0 8px 0;"><strong>Email:</strong> {{.Email}}</p>
                                        <p style="color: #1a1a2e; font-size: 15px; margin: 0 0 8px 0;"><strong>Role:</strong> {{.Role}}</p>
                                        <p style="color: #1a1a2e; font-size: 15px; margin: 0 0 8px 0;"><strong>Temporary Password:</strong></p>
                                        <p style="font-family: monospace; font-size: 18px; font-weight: bold; color: #1976d2; background: #ffffff; padding: 10px; border-radius: 4px; margin: 0;">{{.TemporaryPassword}}</p>
                                    </td>
                                </tr>
                            </table>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 30px 0;">
                                Please change your password immediately after your first login.
                            </p>
                            <table role="presentation" style="margin: 0 auto;">
                                <tr>
                                    <td style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); border-radius: 8px;">
                                        <a href="{{.DashboardURL}}" style="display: inline-block; padding: 16px 32px; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 600;">Access Dashboard</a>
                                    </td>
                                </tr>
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0 0 10px 0;">This is an automated message from {{.AppName}} Management System.</p>
                            <p style="color: #cbd5e0; font-size: 12px; margin: 0;">If you have any questions, please contact your manager.</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

// lowStockAlertTemplate is the HTML template for low-stock alert emails
const lowStockAlertTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Low Stock Alert</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
                    <tr>
                        <td style="background: linear-gradient(135deg, #f5576c 0%, #f093fb 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">Low Stock Alert</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                The following products have fallen to or below their low-stock threshold and need restocking:
                            </p>
                            <table role="presentation" style="width: 100%; border-collapse: collapse;">
                                <tr style="background-color: #f8fafc;">
                                    <th style="padding: 10px; text-align: left; color: #1a1a2e; font-size: 14px; border-bottom: 2px solid #e2e8f0;">Product</th>
                                    <th style="padding: 10px; text-align: right; color: #1a1a2e; font-size: 14px; border-bottom: 2px solid #e2e8f0;">Remaining</th>
                                    <th style="padding: 10px; text-align: right; color: #1a1a2e; font-size: 14px; border-bottom: 2px solid #e2e8f0;">Threshold</th>
                                </tr>
                                {{range .Products}}
                                <tr>
                                    <td style="padding: 10px; color: #4a5568; font-size: 14px; border-bottom: 1px solid #e2e8f0;">{{.Name}}</td>
                                    <td style="padding: 10px; text-align: right; color: #e53e3e; font-size: 14px; font-weight: 600; border-bottom: 1px solid #e2e8f0;">{{.Current}} {{.Unit}}</td>
                                    <td style="padding: 10px; text-align: right; color: #4a5568; font-size: 14px; border-bottom: 1px solid #e2e8f0;">{{.Threshold}} {{.Unit}}</td>
                                </tr>
                                {{end}}
                            </table>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0;">This is an automated alert from {{.AppName}}</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`

// orderReceiptTemplate is the HTML template for purchase receipt emails
const orderReceiptTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Your Receipt</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
                    <tr>
                        <td style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.AppName}}</h1>
                            <p style="color: #e2e8f0; margin: 10px 0 0 0;">Receipt for Order {{.OrderNumber}}</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 40px 30px;">
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Thank you for your purchase{{if .CustomerName}}, {{.CustomerName}}{{end}}!
                            </p>
                            <table role="presentation" style="width: 100%; border-collapse: collapse; margin: 0 0 20px 0;">
                                <tr style="background-color: #f8fafc;">
                                    <th style="padding: 10px; text-align: left; color: #1a1a2e; font-size: 14px; border-bottom: 2px solid #e2e8f0;">Item</th>
                                    <th style="padding: 10px; text-align: right; color: #1a1a2e; font-size: 14px; border-bottom: 2px solid #e2e8f0;">Qty</th>
                                    <th style="padding: 10px; text-align: right; color: #1a1a2e; font-size: 14px; border-bottom: 2px solid #e2e8f0;">Total</th>
                                </tr>
                                {{range .Items}}
                                <tr>
                                    <td style="padding: 10px; color: #4a5568; font-size: 14px; border-bottom: 1px solid #e2e8f0;">{{.Name}}</td>
                                    <td style="padding: 10px; text-align: right; color: #4a5568; font-size: 14px; border-bottom: 1px solid #e2e8f0;">{{.Quantity}} {{.Unit}}</td>
                                    <td style="padding: 10px; text-align: right; color: #4a5568; font-size: 14px; border-bottom: 1px solid #e2e8f0;">{{printf "%.2f" .Total}}</td>
                                </tr>
                                {{end}}
                            </table>
                            <p style="color: #4a5568; font-size: 15px; text-align: right; margin: 0 0 5px 0;">Subtotal: {{printf "%.2f" .SubTotal}}</p>
                            <p style="color: #4a5568; font-size: 15px; text-align: right; margin: 0 0 5px 0;">Tax: {{printf "%.2f" .Tax}}</p>
                            <p style="color: #1a1a2e; font-size: 18px; font-weight: 600; text-align: right; margin: 0;">Total: {{printf "%.2f" .Total}}</p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0;">This email was sent by {{.AppName}}</p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
